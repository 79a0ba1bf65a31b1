// Package entropy provides the randomness sources used to draw cards.
package entropy

import (
	"crypto/cipher"
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"sync"

	"go.dedis.ch/kyber/v4/suites"

	"github.com/tmiltonj/depose/internal/engine"
)

var suite = suites.MustFind("Ed25519")

// Crypto draws from the suite's cryptographic random stream. Nobody at
// the table, the host included, can predict the deck.
type Crypto struct {
	mu     sync.Mutex
	stream cipher.Stream
}

func NewCrypto() *Crypto {
	return &Crypto{stream: suite.RandomStream()}
}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (c *Crypto) IntN(n int) int {
	if n <= 0 {
		panic("entropy: invalid argument to IntN")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := crand.Int(cipher.StreamReader{S: c.stream, R: zeroReader{}}, big.NewInt(int64(n)))
	if err != nil {
		panic("entropy: " + err.Error())
	}
	return int(v.Int64())
}

// zeroReader feeds the stream cipher so its output is the raw keystream.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// Seeded is a reproducible PCG source for replays and tests.
type Seeded struct {
	r *rand.Rand
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) IntN(n int) int {
	return s.r.IntN(n)
}

// New returns a seeded source, or the cryptographic one when seed is 0.
func New(seed uint64) engine.RandomSource {
	if seed == 0 {
		return NewCrypto()
	}
	return NewSeeded(seed)
}
