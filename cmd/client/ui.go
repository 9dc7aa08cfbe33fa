package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/bytethedealer/blackjack-node/pkg/game"
	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// terminalObserver renders round events as they arrive from the dealer.
type terminalObserver struct{}

func (terminalObserver) RoundStarted(round, totalRounds int) {
	pterm.Println()
	pterm.DefaultSection.Printfln("Round %d of %d", round, totalRounds)
}

func (terminalObserver) PlayerCard(card protocol.Card, total int) {
	pterm.Printfln("You drew %s  (total %d)", renderCard(card), total)
}

func (terminalObserver) DealerCard(card protocol.Card, total int) {
	pterm.Printfln("Dealer shows %s  (showing %d)", renderCard(card), total)
}

func (terminalObserver) PlayerActed(action protocol.Action) {
	if action == protocol.ActionStand {
		pterm.Println(pterm.Gray("You stand."))
	}
}

func (terminalObserver) RoundResolved(result protocol.Result, playerTotal, dealerTotal int) {
	totals := pterm.Sprintf("you %d, dealer %d", playerTotal, dealerTotal)
	switch result {
	case protocol.ResultWin:
		pterm.Success.Printfln("You win! (%s)", totals)
	case protocol.ResultLoss:
		pterm.Error.Printfln("You lose. (%s)", totals)
	case protocol.ResultTie:
		pterm.Warning.Printfln("Push. (%s)", totals)
	}
}

// renderCard colors hearts and diamonds red, like a real deck.
func renderCard(card protocol.Card) string {
	switch card.Suit {
	case protocol.Hearts, protocol.Diamonds:
		return pterm.LightRed(card.String())
	default:
		return pterm.LightWhite(card.String())
	}
}

func renderHand(hand game.Hand) string {
	rendered := make([]string, len(hand))
	for i, card := range hand {
		rendered[i] = renderCard(card)
	}
	return strings.Join(rendered, " ")
}
