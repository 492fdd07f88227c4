// internal/lobby/service.go
//
// The lobby state machine. Each lobby moves through exactly two states:
//
//   OPEN    — accepting joins, not yet started
//   STARTED — terminal; roles fixed, no further joins or restarts
//
// Every mutating operation runs inside Registry.MutateExclusive and does
// all of its checks before applying any change, so a failed call leaves
// the lobby untouched. Callers pass a pre-validated `authorized` flag for
// admin-gated operations; the core never sees the administrator secret.

package lobby

import (
	"fmt"
	"strings"
	"time"
)

// Service implements the create/join/start/query operations on top of a
// Registry, a CodeGenerator and a RoleAssigner.
type Service struct {
	reg   *Registry
	codes *CodeGenerator
	roles *RoleAssigner
}

// NewService wires the state machine to its collaborators.
func NewService(reg *Registry, codes *CodeGenerator, roles *RoleAssigner) *Service {
	return &Service{reg: reg, codes: codes, roles: roles}
}

// RoleInfo is the per-player view of a started game. The impostor gets an
// empty Word; everyone else gets the shared secret word.
type RoleInfo struct {
	IsImpostor bool
	Word       string
}

// Create opens a new lobby with a single admin player (id 1) and returns
// its public snapshot plus the admin's player id.
//
// Invalid difficulty and out-of-range maxPlayers are normalized, not
// rejected; an empty admin name (after trimming/truncation) is.
func (s *Service) Create(adminName string, maxPlayers int, difficulty string, authorized bool) (Summary, int, error) {
	if !authorized {
		return Summary{}, 0, fmt.Errorf("create lobby: %w", ErrUnauthorized)
	}
	name := cleanName(adminName)
	if name == "" {
		return Summary{}, 0, fmt.Errorf("admin name is required: %w", ErrValidation)
	}

	l := &Lobby{
		Difficulty: ParseDifficulty(difficulty),
		MaxPlayers: clampMaxPlayers(maxPlayers),
		Players:    []Player{{ID: 1, Name: name, IsAdmin: true}},
		CreatedAt:  time.Now(),
	}

	// Draw codes until one lands in the registry. Collisions are rare in a
	// 10^8 space but possible, so the insert (which checks and stores under
	// one lock) is the authority, not the generator. The snapshot is taken
	// before Insert: once the lobby is in the registry it is reachable by
	// concurrent joins, and touching it again here would race them.
	for {
		code, err := s.codes.Generate()
		if err != nil {
			return Summary{}, 0, fmt.Errorf("create lobby: %w: %v", ErrInternal, err)
		}
		l.Code = code
		snap := l.summary()
		if err := s.reg.Insert(l); err == nil {
			return snap, 1, nil
		}
	}
}

// Join adds a player to an open lobby and returns the new player's id
// plus the updated snapshot.
func (s *Service) Join(code, name string) (int, Summary, error) {
	var (
		id   int
		snap Summary
	)
	err := s.reg.MutateExclusive(code, func(l *Lobby) error {
		if l.Started {
			return fmt.Errorf("game already started: %w", ErrConflict)
		}
		if len(l.Players) >= l.MaxPlayers {
			return fmt.Errorf("lobby is full: %w", ErrConflict)
		}
		clean := cleanName(name)
		if clean == "" {
			return fmt.Errorf("player name is required: %w", ErrValidation)
		}
		for _, p := range l.Players {
			if strings.EqualFold(p.Name, clean) {
				return fmt.Errorf("name already taken in this lobby: %w", ErrConflict)
			}
		}
		l.Players = append(l.Players, Player{ID: len(l.Players) + 1, Name: clean})
		id = len(l.Players)
		snap = l.summary()
		return nil
	})
	if err != nil {
		return 0, Summary{}, err
	}
	return id, snap, nil
}

// Start assigns roles and flips the lobby to its terminal STARTED state.
// The returned snapshot reveals neither the impostor nor the word.
func (s *Service) Start(code string, authorized bool) (Summary, error) {
	if !authorized {
		return Summary{}, fmt.Errorf("start game: %w", ErrUnauthorized)
	}
	var snap Summary
	err := s.reg.MutateExclusive(code, func(l *Lobby) error {
		if l.Started {
			return fmt.Errorf("game already started: %w", ErrConflict)
		}
		if len(l.Players) < MinPlayers {
			return fmt.Errorf("at least %d players required: %w", MinPlayers, ErrConflict)
		}
		impostorID, word, err := s.roles.Assign(l.Players)
		if err != nil {
			return fmt.Errorf("start game: %w: %v", ErrInternal, err)
		}
		l.ImpostorID = impostorID
		l.SecretWord = word
		l.Started = true
		snap = l.summary()
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return snap, nil
}

// Summary returns the public view of a lobby, available in any state.
func (s *Service) Summary(code string) (Summary, error) {
	return s.reg.Get(code)
}

// Role returns a player's role in a started game. The not-started check
// deliberately precedes the player lookup, so probing an unstarted lobby
// reveals nothing about its membership.
func (s *Service) Role(code string, playerID int) (RoleInfo, error) {
	var info RoleInfo
	err := s.reg.ReadExclusive(code, func(l *Lobby) error {
		if !l.Started {
			return fmt.Errorf("game has not started yet: %w", ErrConflict)
		}
		for _, p := range l.Players {
			if p.ID == playerID {
				info.IsImpostor = p.ID == l.ImpostorID
				if !info.IsImpostor {
					info.Word = l.SecretWord
				}
				return nil
			}
		}
		return fmt.Errorf("player %d: %w", playerID, ErrNotFound)
	})
	if err != nil {
		return RoleInfo{}, err
	}
	return info, nil
}
