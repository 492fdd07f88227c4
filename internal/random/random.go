// internal/random/random.go
//
// Uniform random source abstraction.
// Production code uses CryptoSource (crypto/rand); tests substitute a
// deterministic Source so lobby codes and role picks become predictable
// without changing any production code path.

package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Source produces uniformly distributed integers.
type Source interface {
	// IntN returns a uniform value in [0, n). n must be > 0.
	IntN(n int) (int, error)
}

// CryptoSource is the production Source, backed by crypto/rand.
type CryptoSource struct{}

// NewCryptoSource returns a crypto/rand-backed Source.
func NewCryptoSource() CryptoSource { return CryptoSource{} }

// IntN draws a uniform value in [0, n) from the OS entropy pool.
func (CryptoSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random: IntN called with n=%d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random: read entropy: %w", err)
	}
	return int(v.Int64()), nil
}
