package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULIDs that sort in the order they were generated,
// including IDs created within the same millisecond.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator seeds a monotonic entropy source from crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:  time.Now,
	}
}

// Next returns the next ULID string.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// only on entropy exhaustion within one millisecond or a clock before 1970
		panic(err)
	}
	return id.String()
}

// Sequence returns n IDs in ascending order.
func (g *Generator) Sequence(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
