// Package dice provides the random-decision source threaded through the
// executor: one Roller per combat encounter services every crit roll and
// probabilistic status application, advancing exactly once per decision so
// replaying the same seed against the same inputs reproduces the same
// outcome.
package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Roller draws a uniform float64 in [0,1) for a probabilistic decision
// (crit roll, auto-apply chance). Implementations must be safe for the
// single-threaded cooperative ticking model described in the combat
// manager; they are not required to be safe for concurrent use.
//
//go:generate mockgen -destination=mock_dice/mock_roller.go -package=mock_dice github.com/forgeburn/tagengine/dice Roller
type Roller interface {
	// Float64 returns a uniform random value in [0,1).
	Float64() float64
}

// CryptoRoller implements Roller using crypto/rand. It is the default for
// live play where reproducibility is not required.
type CryptoRoller struct{}

// Float64 returns a cryptographically random value in [0,1).
func (CryptoRoller) Float64() float64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<53))
	if err != nil {
		// crypto/rand failing is a fatal platform condition; fall back to
		// the least-random but always-available stdlib source rather than
		// panicking mid-combat.
		return mrand.Float64()
	}
	return float64(n.Int64()) / float64(int64(1)<<53)
}

// SeededRoller implements Roller with a reproducible PRNG. The combat
// manager owns exactly one per encounter and threads it through every
// executor.Execute call so repeated execution with the same seed and
// inputs yields identical output, per the damage pipeline's determinism
// requirement.
type SeededRoller struct {
	rng *mrand.Rand
}

// NewSeededRoller creates a SeededRoller from a 64-bit seed.
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: mrand.New(mrand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Float64 returns the next value from the seeded sequence.
func (s *SeededRoller) Float64() float64 {
	return s.rng.Float64()
}
