// internal/lobby/codes.go

package lobby

import (
	"fmt"

	"github.com/impostorparty/go-server/internal/random"
)

// codeSpace is the number of possible lobby codes (8 decimal digits).
const codeSpace = 100_000_000

// CodeGenerator produces 8-digit numeric lobby codes, uniformly distributed
// with leading zeros preserved. It is stateless; uniqueness is enforced by
// the registry's check-and-insert, which retries on collision.
type CodeGenerator struct {
	src random.Source
}

// NewCodeGenerator returns a generator drawing from src.
func NewCodeGenerator(src random.Source) *CodeGenerator {
	return &CodeGenerator{src: src}
}

// Generate draws one code from the full 10^8 space.
func (g *CodeGenerator) Generate() (string, error) {
	n, err := g.src.IntN(codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%08d", n), nil
}
