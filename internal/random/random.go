package random

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	codeMin   = 1000
	codeRange = 9000
)

// Randomizer scrambles served round content and draws player access codes
type Randomizer interface {
	// Shuffled returns a permuted copy of items; the input is left untouched
	Shuffled(items []string) []string

	// AccessCode returns a 4-digit code in [1000, 9999]
	AccessCode() string
}

// Generator provides seeded randomness for rounds and codes.
// It is not safe for concurrent use; the session loop is its only caller.
type Generator struct {
	random *rand.Rand
}

// Config for the generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new generator
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Generator{
		random: random,
	}
}

// Shuffled returns a Fisher-Yates permutation of a copy of items
func (g *Generator) Shuffled(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	g.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// AccessCode draws a uniform 4-digit code. Codes are not checked for
// collisions across players.
func (g *Generator) AccessCode() string {
	return strconv.Itoa(codeMin + g.random.Intn(codeRange))
}
