// internal/lobby/roles.go

package lobby

import (
	"fmt"

	"github.com/impostorparty/go-server/internal/random"
)

// RoleAssigner picks the impostor and the secret word when a game starts.
// Both picks are uniform; a predictable pick would defeat the game.
// It never mutates the lobby itself.
type RoleAssigner struct {
	src   random.Source
	words []string
}

// NewRoleAssigner returns an assigner drawing players from src and secret
// words from the given vocabulary. The vocabulary must hold at least two
// entries so the impostor cannot trivially infer the word.
func NewRoleAssigner(src random.Source, words []string) *RoleAssigner {
	return &RoleAssigner{src: src, words: words}
}

// Assign selects one player as impostor and one vocabulary word.
func (a *RoleAssigner) Assign(players []Player) (impostorID int, word string, err error) {
	if len(players) == 0 {
		return 0, "", fmt.Errorf("assign roles: no players")
	}
	if len(a.words) < 2 {
		return 0, "", fmt.Errorf("assign roles: vocabulary too small")
	}
	pi, err := a.src.IntN(len(players))
	if err != nil {
		return 0, "", fmt.Errorf("assign roles: pick impostor: %w", err)
	}
	wi, err := a.src.IntN(len(a.words))
	if err != nil {
		return 0, "", fmt.Errorf("assign roles: pick word: %w", err)
	}
	return players[pi].ID, a.words[wi], nil
}
