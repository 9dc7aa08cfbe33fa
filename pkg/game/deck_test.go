package game

import (
	"math/rand"
	"testing"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

func TestDeckCoversAllCardsOnce(t *testing.T) {
	deck := NewDeck()
	if deck.Remaining() != 52 {
		t.Fatalf("Remaining() = %d, want 52", deck.Remaining())
	}

	seen := make(map[protocol.Card]bool, 52)
	for i := 0; i < 52; i++ {
		card := deck.Draw()
		if card.Rank < 1 || card.Rank > 13 {
			t.Fatalf("draw %d: rank %d out of range", i, card.Rank)
		}
		if !card.Suit.Valid() {
			t.Fatalf("draw %d: invalid suit %q", i, card.Suit)
		}
		if seen[card] {
			t.Fatalf("draw %d: duplicate card %v within one cycle", i, card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Fatalf("drew %d distinct cards, want 52", len(seen))
	}
}

func TestDeckImplicitReset(t *testing.T) {
	deck := NewDeck()
	for i := 0; i < 52; i++ {
		deck.Draw()
	}
	if deck.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after exhausting, want 0", deck.Remaining())
	}

	// The 53rd draw must reshuffle a full deck first, never fail.
	card := deck.Draw()
	if card.Rank < 1 || card.Rank > 13 || !card.Suit.Valid() {
		t.Fatalf("draw after exhaustion returned invalid card %v", card)
	}
	if deck.Remaining() != 51 {
		t.Fatalf("Remaining() = %d after implicit reset, want 51", deck.Remaining())
	}
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	a := NewDeckWithRand(rand.New(rand.NewSource(7)))
	b := NewDeckWithRand(rand.New(rand.NewSource(7)))
	for i := 0; i < 52; i++ {
		if ca, cb := a.Draw(), b.Draw(); ca != cb {
			t.Fatalf("draw %d: %v != %v for equal seeds", i, ca, cb)
		}
	}
}
