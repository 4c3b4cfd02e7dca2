package engine

import (
	"reflect"
	"testing"
)

func TestRandSameSeedSameStream(t *testing.T) {
	r1 := NewRand(99)
	r2 := NewRand(99)
	for i := 0; i < 1000; i++ {
		a, b := r1.Float64(), r2.Float64()
		if a != b {
			t.Fatalf("stream diverged at draw %d: %v vs %v", i, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("draw %d = %v out of [0,1)", i, a)
		}
	}
}

func TestCardRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 500; i++ {
		c := r.Card(9)
		if c < 1 || c > 9 {
			t.Fatalf("Card(9) = %d out of [1,9]", c)
		}
	}
}

func TestDealIsAShuffleOfTheDeck(t *testing.T) {
	r := NewRand(3)
	hand := r.Deal(9, 5)
	if len(hand) != 5 {
		t.Fatalf("hand size = %d, want 5", len(hand))
	}
	seen := map[int]bool{}
	for _, c := range hand {
		if c < 1 || c > 9 {
			t.Errorf("card %d out of deck range", c)
		}
		if seen[c] {
			t.Errorf("duplicate card %d", c)
		}
		seen[c] = true
	}

	// Oversized hands truncate to the deck.
	full := NewRand(3).Deal(4, 10)
	if len(full) != 4 {
		t.Errorf("hand size = %d, want deck size 4", len(full))
	}
}

func TestDealDeterministic(t *testing.T) {
	h1 := NewRand(555).Deal(9, 5)
	h2 := NewRand(555).Deal(9, 5)
	if !reflect.DeepEqual(h1, h2) {
		t.Errorf("same seed dealt different hands: %v vs %v", h1, h2)
	}
}
