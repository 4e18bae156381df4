package pnr

import (
	"math/rand"
	"sync"
	"time"
)

// Length is the size of every reference code.
const Length = 6

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator draws 6-character uppercase-alphanumeric booking references.
// The keyspace is 36^6; global uniqueness is enforced by the bookings table,
// callers retry on a duplicate insert. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator backed by the given random source.
// A nil source seeds one from the wall clock.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[g.rnd.Intn(len(alphabet))]
	}
	return string(buf)
}

// Valid reports whether code has the shape of a reference this generator
// produces.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
