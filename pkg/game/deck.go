package game

import (
	"math/rand"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// CardSource deals cards to the dealer's round machine. A session owns
// exactly one source; nothing is shared across sessions.
type CardSource interface {
	// Reset discards the remaining cards and starts a fresh cycle.
	Reset()
	// Draw removes and returns the next card. Draw never fails.
	Draw() protocol.Card
}

// Deck is a standard 52-card deck. Within one cycle no two draws return
// the same (rank, suit) pair; an empty deck is reshuffled in full before
// the next draw.
type Deck struct {
	cards []protocol.Card
	rng   *rand.Rand
}

// NewDeck returns a freshly shuffled deck backed by the process-wide
// random source.
func NewDeck() *Deck {
	d := &Deck{}
	d.Reset()
	return d
}

// NewDeckWithRand returns a deck shuffled with rng, for deterministic play.
func NewDeckWithRand(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset replaces the contents with all 52 distinct cards in a uniformly
// random order.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for rank := uint8(1); rank <= 13; rank++ {
		for _, suit := range protocol.Suits {
			d.cards = append(d.cards, protocol.Card{Rank: rank, Suit: suit})
		}
	}
	swap := func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(d.cards), swap)
	} else {
		rand.Shuffle(len(d.cards), swap)
	}
}

// Draw removes and returns the last card, implicitly resetting first when
// the deck is exhausted so a draw never observes an empty deck.
func (d *Deck) Draw() protocol.Card {
	if len(d.cards) == 0 {
		d.Reset()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining returns the number of undrawn cards in the current cycle.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
