package game

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the random stream feeding shuffles and lifelines so
// outcomes can be replayed from a fixed seed in tests.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source used outside of tests.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source for deterministic tests.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// fixedRNG always yields the same value. Handy for pinning lifeline outcomes.
type fixedRNG struct{ v float64 }

func (f fixedRNG) Float64() float64 { return f.v }

// FixedRNG returns a source that yields v on every call.
func FixedRNG(v float64) RandomSource { return fixedRNG{v: v} }
