// Package util provides shared randomness and id helpers.
package util

import (
	"math/rand/v2"
	"strings"
)

// Rand is the randomness surface the engine depends on. Tests inject a
// seeded source to make shuffles and probability draws deterministic;
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns an independently seeded Rand for production use.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic Rand for tests.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// GenerateRandomID generates a random ID with the specified prefix and hex
// length, in the format "{prefix}{hex_string}".
func GenerateRandomID(prefix string, hexLength int) string {
	return prefix + GenerateRandomHex(hexLength)
}

// GenerateRandomHex generates a random hexadecimal string of the specified
// length. Uses math/rand/v2; not for cryptographic purposes.
func GenerateRandomHex(length int) string {
	if length <= 0 {
		return ""
	}

	const hexChars = "0123456789abcdef"
	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		builder.WriteByte(hexChars[rand.IntN(16)])
	}

	return builder.String()
}

// GenerateChoiceID generates a fallback id for a scene choice the provider
// returned without one.
func GenerateChoiceID() string {
	return GenerateRandomID("c_", 8)
}
