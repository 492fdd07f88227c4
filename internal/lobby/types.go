// internal/lobby/types.go
//
// Core type definitions for the lobby state machine.
// Defines:
//   - Difficulty: the 3-value game-variant tag.
//   - Player: a participant, identified by a per-lobby sequential id.
//   - Lobby: mutable state for a single game session.
//   - Summary: the public, secret-free snapshot returned to callers.

package lobby

import (
	"strings"
	"time"
)

// Difficulty is a selectable game-variant tag. It is stored and displayed
// but has no further behavioral effect in the core.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "latwy"
	DifficultyMedium Difficulty = "sredni"
	DifficultyHard   Difficulty = "trudny"
)

// ParseDifficulty normalizes an arbitrary input to a valid Difficulty.
// Invalid or absent values fall back to the easiest setting.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.TrimSpace(s)) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(strings.TrimSpace(s))
	default:
		return DifficultyEasy
	}
}

// Player limits applied at creation/join time.
const (
	MinPlayers = 3
	MaxPlayers = 12
	MaxNameLen = 32
)

// Player is a participant in a lobby.
// Ids are assigned sequentially from 1 in join order; the creator is
// always id 1 and the only admin.
type Player struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Lobby holds the mutable state of a single game session.
// All mutation goes through Registry.MutateExclusive; nothing outside
// this package touches a Lobby directly.
type Lobby struct {
	Code       string
	Difficulty Difficulty
	MaxPlayers int
	Players    []Player
	Started    bool
	ImpostorID int    // 0 until Started
	SecretWord string // "" until Started
	CreatedAt  time.Time
}

// Summary is the public view of a lobby: never includes the secret word
// or the impostor id, in any state.
type Summary struct {
	Code       string     `json:"code"`
	Difficulty Difficulty `json:"difficulty"`
	MaxPlayers int        `json:"maxPlayers"`
	Players    []Player   `json:"players"`
	Started    bool       `json:"started"`
	Filled     bool       `json:"filled"`
	CreatedAt  int64      `json:"createdAt"` // unix milliseconds
}

// summary builds a deep-copied public snapshot of l.
// Caller must hold at least a read lock on the lobby's entry.
func (l *Lobby) summary() Summary {
	players := make([]Player, len(l.Players))
	copy(players, l.Players)
	return Summary{
		Code:       l.Code,
		Difficulty: l.Difficulty,
		MaxPlayers: l.MaxPlayers,
		Players:    players,
		Started:    l.Started,
		Filled:     len(l.Players) >= l.MaxPlayers,
		CreatedAt:  l.CreatedAt.UnixMilli(),
	}
}

// clampMaxPlayers bounds the requested lobby size.
// The zero value (absent input) becomes the minimum.
func clampMaxPlayers(n int) int {
	if n < MinPlayers {
		return MinPlayers
	}
	if n > MaxPlayers {
		return MaxPlayers
	}
	return n
}

// cleanName trims surrounding whitespace and truncates to MaxNameLen runes.
// An empty result means the name is invalid.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	return name
}
