package game

import (
	"fmt"
	"io"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// Strategy chooses the player's next action from the observable state of
// the round. The round machine itself has no dependency on interactive
// input; an application injects a prompt, a bot, or anything else.
type Strategy func(total int, hand Hand) protocol.Action

// StandAt returns the strategy that hits below threshold and stands at or
// above it. StandAt(17) plays like the dealer.
func StandAt(threshold int) Strategy {
	return func(total int, _ Hand) protocol.Action {
		if total < threshold {
			return protocol.ActionHit
		}
		return protocol.ActionStand
	}
}

// Observer receives display events as a round unfolds. It is consumed for
// rendering only and never affects protocol state.
type Observer interface {
	RoundStarted(round, totalRounds int)
	PlayerCard(card protocol.Card, total int)
	DealerCard(card protocol.Card, total int)
	PlayerActed(action protocol.Action)
	RoundResolved(result protocol.Result, playerTotal, dealerTotal int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RoundStarted(int, int)                   {}
func (NopObserver) PlayerCard(protocol.Card, int)           {}
func (NopObserver) DealerCard(protocol.Card, int)           {}
func (NopObserver) PlayerActed(protocol.Action)             {}
func (NopObserver) RoundResolved(protocol.Result, int, int) {}

// PlayerRound mirrors the dealer's round machine reactively: it reads
// exactly the payloads the dealer promises to send at each juncture,
// keeps its own running totals, and transmits only while a decision is
// awaited. It never invents state the wire did not carry.
type PlayerRound struct {
	rw       io.ReadWriter
	strategy Strategy
	observer Observer
	player   Hand
	dealer   Hand
}

// NewPlayerRound creates the player side of one round. A nil strategy
// stands at 17; a nil observer discards display events.
func NewPlayerRound(rw io.ReadWriter, strategy Strategy, observer Observer) *PlayerRound {
	if strategy == nil {
		strategy = StandAt(17)
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &PlayerRound{rw: rw, strategy: strategy, observer: observer}
}

// Hands returns both hands as seen from the player's side, for display.
// The dealer hand only holds the cards revealed so far.
func (p *PlayerRound) Hands() (player, dealer Hand) {
	return p.player, p.dealer
}

// Play consumes one round from the wire and returns its result. A short
// read or decode failure aborts the round: the session is desynchronized
// beyond repair and the caller must drop the connection.
func (p *PlayerRound) Play() (protocol.Result, error) {
	// Initial deal: two player cards, then the dealer's up card.
	for i := 0; i < 2; i++ {
		payload, err := protocol.ReadServerPayload(p.rw)
		if err != nil {
			return 0, fmt.Errorf("awaiting initial deal: %w", err)
		}
		p.player = append(p.player, payload.Card)
		p.observer.PlayerCard(payload.Card, p.player.Total())
	}
	payload, err := protocol.ReadServerPayload(p.rw)
	if err != nil {
		return 0, fmt.Errorf("awaiting dealer up card: %w", err)
	}
	p.dealer = append(p.dealer, payload.Card)
	p.observer.DealerCard(payload.Card, p.dealer.Total())

	// Decision loop, solicited only while the total is under 21.
	for p.player.Total() < 21 {
		action := p.strategy(p.player.Total(), p.player)
		if err := protocol.Write(p.rw, &protocol.ClientPayload{Action: action}); err != nil {
			return 0, fmt.Errorf("sending action: %w", err)
		}
		p.observer.PlayerActed(action)

		payload, err := protocol.ReadServerPayload(p.rw)
		if err != nil {
			return 0, fmt.Errorf("awaiting reply to %s: %w", action, err)
		}
		if action == protocol.ActionStand {
			// No-card acknowledgment; the dealer's turn begins.
			break
		}
		if payload.HasCard() {
			p.player = append(p.player, payload.Card)
			p.observer.PlayerCard(payload.Card, p.player.Total())
		}
		if payload.Result != protocol.ResultNotOver {
			// Bust, reported inline with the last card.
			p.observer.RoundResolved(payload.Result, p.player.Total(), p.dealer.Total())
			return payload.Result, nil
		}
	}

	// Dealer turn: hole card first, then draws until the result turns final.
	payload, err = protocol.ReadServerPayload(p.rw)
	if err != nil {
		return 0, fmt.Errorf("awaiting hole card: %w", err)
	}
	if payload.HasCard() {
		p.dealer = append(p.dealer, payload.Card)
		p.observer.DealerCard(payload.Card, p.dealer.Total())
	}
	result := payload.Result
	for result == protocol.ResultNotOver {
		payload, err = protocol.ReadServerPayload(p.rw)
		if err != nil {
			return 0, fmt.Errorf("awaiting dealer card: %w", err)
		}
		if payload.HasCard() {
			p.dealer = append(p.dealer, payload.Card)
			p.observer.DealerCard(payload.Card, p.dealer.Total())
		}
		result = payload.Result
	}

	p.observer.RoundResolved(result, p.player.Total(), p.dealer.Total())
	return result, nil
}
