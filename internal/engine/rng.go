package engine

import "math/rand"

// Rand is the engine's deterministic random source. For a fixed seed it
// produces an identical, indefinitely-long stream of floats in [0,1);
// every derived draw (cards, shuffles, role picks) is built on that
// stream so scripted runs replay bit-identically.
type Rand struct {
	src *rand.Rand
}

// NewRand creates a seeded random source.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next float in [0,1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Int63 returns a non-negative random int64, used to derive fresh seeds
// on restart.
func (r *Rand) Int63() int64 {
	return r.src.Int63()
}

// intn draws a uniform int in [0,n) from the float stream.
func (r *Rand) intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n { // Float64 < 1.0, but guard against rounding
		v = n - 1
	}
	return v
}

// Card draws a single random card value in [1, deckSize].
func (r *Rand) Card(deckSize int) int {
	return r.intn(deckSize) + 1
}

// Pick draws a uniform index in [0, n).
func (r *Rand) Pick(n int) int {
	return r.intn(n)
}

// Deal shuffles an ascending deck 1..deckSize and returns the first
// handSize cards.
func (r *Rand) Deal(deckSize, handSize int) []int {
	deck := make([]int, deckSize)
	for i := range deck {
		deck[i] = i + 1
	}
	// Fisher-Yates over the float stream
	for i := len(deck) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	if handSize > len(deck) {
		handSize = len(deck)
	}
	hand := make([]int, handSize)
	copy(hand, deck[:handSize])
	return hand
}
