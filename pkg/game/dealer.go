package game

import (
	"fmt"
	"io"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// Table runs rounds of blackjack as the dealing authority over one
// established connection. The table is the sole source of randomness and
// truth: it owns the card source, withholds the hole card, and decides
// the result. It borrows the connection for the duration of each round.
type Table struct {
	rw     io.ReadWriter
	deck   CardSource
	player Hand
	dealer Hand
}

// NewTable creates a dealer table bound to rw and deck.
func NewTable(rw io.ReadWriter, deck CardSource) *Table {
	return &Table{rw: rw, deck: deck}
}

// Hands returns the hands of the round played last, for logging.
func (t *Table) Hands() (player, dealer Hand) {
	return t.player, t.dealer
}

// PlayRound drives one full round and returns its result from the
// player's perspective. Any read or write failure aborts the round with
// an error; the round is then unresolved and must not be tallied.
func (t *Table) PlayRound() (protocol.Result, error) {
	t.deck.Reset()
	t.player = Hand{t.deck.Draw(), t.deck.Draw()}
	t.dealer = Hand{t.deck.Draw(), t.deck.Draw()}

	// Initial deal: both player cards and the dealer's up card. The
	// dealer's second card is the hole card and stays off the wire.
	if err := t.sendCard(t.player[0], protocol.ResultNotOver); err != nil {
		return 0, err
	}
	if err := t.sendCard(t.player[1], protocol.ResultNotOver); err != nil {
		return 0, err
	}
	if err := t.sendCard(t.dealer[0], protocol.ResultNotOver); err != nil {
		return 0, err
	}

	// Player turn: keep soliciting actions while the running total is
	// under 21. Play only stops itself on bust; reaching 21 simply stops
	// the solicitation, it is not an auto-win.
	for t.player.Total() < 21 {
		payload, err := protocol.ReadClientPayload(t.rw)
		if err != nil {
			return 0, fmt.Errorf("awaiting player action: %w", err)
		}
		if payload.Action == protocol.ActionStand {
			if err := t.sendAck(protocol.ResultNotOver); err != nil {
				return 0, err
			}
			break
		}
		card := t.deck.Draw()
		t.player = append(t.player, card)
		if t.player.Total() > 21 {
			// Player busts: the round terminates without a dealer turn.
			if err := t.sendCard(card, protocol.ResultLoss); err != nil {
				return 0, err
			}
			return protocol.ResultLoss, nil
		}
		if err := t.sendCard(card, protocol.ResultNotOver); err != nil {
			return 0, err
		}
	}

	// Dealer turn: reveal the hole card, then draw to 17.
	if err := t.sendCard(t.dealer[1], protocol.ResultNotOver); err != nil {
		return 0, err
	}
	for t.dealer.Total() < 17 {
		card := t.deck.Draw()
		t.dealer = append(t.dealer, card)
		if err := t.sendCard(card, protocol.ResultNotOver); err != nil {
			return 0, err
		}
	}

	result := Resolve(t.player.Total(), t.dealer.Total())
	if err := t.sendAck(result); err != nil {
		return 0, err
	}
	return result, nil
}

func (t *Table) sendCard(card protocol.Card, result protocol.Result) error {
	return protocol.Write(t.rw, &protocol.ServerPayload{Result: result, Card: card})
}

func (t *Table) sendAck(result protocol.Result) error {
	return protocol.Write(t.rw, &protocol.ServerPayload{Result: result})
}

// Resolve compares final totals from the player's perspective. It is only
// meaningful when the player has not busted: a bust is resolved inline
// during the player turn.
func Resolve(playerTotal, dealerTotal int) protocol.Result {
	switch {
	case dealerTotal > 21:
		return protocol.ResultWin
	case playerTotal > dealerTotal:
		return protocol.ResultWin
	case dealerTotal > playerTotal:
		return protocol.ResultLoss
	default:
		return protocol.ResultTie
	}
}
