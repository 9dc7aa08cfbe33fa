package game

import (
	"strings"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// Hand is the ordered sequence of cards held by one side for the current
// round. Hands are discarded at round end.
type Hand []protocol.Card

// Total returns the blackjack value of the hand.
func (h Hand) Total() int {
	sum := 0
	for _, c := range h {
		sum += c.Value()
	}
	return sum
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
