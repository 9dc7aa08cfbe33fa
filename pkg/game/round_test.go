package game

import (
	"net"
	"testing"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// stackedSource deals a scripted sequence of cards, in order.
type stackedSource struct {
	cards []protocol.Card
}

func (s *stackedSource) Reset() {}

func (s *stackedSource) Draw() protocol.Card {
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

func card(rank uint8, suit protocol.Suit) protocol.Card {
	return protocol.Card{Rank: rank, Suit: suit}
}

// playScripted runs the dealer machine against the player machine over an
// in-memory pipe: the deal order is player, player, dealer up, hole card,
// then whatever each turn draws.
func playScripted(t *testing.T, deal []protocol.Card, strategy Strategy) (dealerResult, playerResult protocol.Result, table *Table, round *PlayerRound) {
	t.Helper()

	serverEnd, clientEnd := net.Pipe()
	defer serverEnd.Close()
	defer clientEnd.Close()

	table = NewTable(serverEnd, &stackedSource{cards: deal})

	type outcome struct {
		result protocol.Result
		err    error
	}
	dealerDone := make(chan outcome, 1)
	go func() {
		result, err := table.PlayRound()
		dealerDone <- outcome{result, err}
	}()

	round = NewPlayerRound(clientEnd, strategy, nil)
	playerResult, err := round.Play()
	if err != nil {
		t.Fatalf("player Play() error = %v", err)
	}

	dealer := <-dealerDone
	if dealer.err != nil {
		t.Fatalf("dealer PlayRound() error = %v", dealer.err)
	}
	return dealer.result, playerResult, table, round
}

func TestRoundStandLeadsToTie(t *testing.T) {
	// Player 10♠ 9♦ = 19, stands. Dealer shows 6♣, hole 5♥ = 11, must
	// draw below 17, draws 8♦ = 19. Tie.
	deal := []protocol.Card{
		card(10, protocol.Spades), card(9, protocol.Diamonds),
		card(6, protocol.Clubs), card(5, protocol.Hearts),
		card(8, protocol.Diamonds),
	}

	dealerResult, playerResult, table, _ := playScripted(t, deal, StandAt(17))

	if dealerResult != protocol.ResultTie {
		t.Errorf("dealer result = %v, want tie", dealerResult)
	}
	if playerResult != protocol.ResultTie {
		t.Errorf("player result = %v, want tie", playerResult)
	}
	player, dealer := table.Hands()
	if player.Total() != 19 || dealer.Total() != 19 {
		t.Errorf("totals = %d vs %d, want 19 vs 19", player.Total(), dealer.Total())
	}
}

func TestRoundPlayerBustTerminatesImmediately(t *testing.T) {
	// Player 10♠ 5♦ = 15, hits into 7♣ = 22: immediate loss, no dealer turn.
	deal := []protocol.Card{
		card(10, protocol.Spades), card(5, protocol.Diamonds),
		card(2, protocol.Hearts), card(3, protocol.Hearts),
		card(7, protocol.Clubs),
	}

	dealerResult, playerResult, table, _ := playScripted(t, deal, StandAt(17))

	if dealerResult != protocol.ResultLoss {
		t.Errorf("dealer result = %v, want loss", dealerResult)
	}
	if playerResult != protocol.ResultLoss {
		t.Errorf("player result = %v, want loss", playerResult)
	}
	_, dealer := table.Hands()
	if len(dealer) != 2 {
		t.Errorf("dealer drew %d cards, want none beyond the deal", len(dealer)-2)
	}
}

func TestRoundDealtTwentyOneThenDealerBusts(t *testing.T) {
	// Player A♥ K♣ = 21: no action is solicited. Dealer 10♠ + 6♥ = 16,
	// draws 9♦ = 25 and busts. Win.
	deal := []protocol.Card{
		card(1, protocol.Hearts), card(13, protocol.Clubs),
		card(10, protocol.Spades), card(6, protocol.Hearts),
		card(9, protocol.Diamonds),
	}

	busted := func(int, Hand) protocol.Action {
		t.Error("strategy consulted although total is already 21")
		return protocol.ActionStand
	}

	dealerResult, playerResult, _, round := playScripted(t, deal, busted)

	if dealerResult != protocol.ResultWin {
		t.Errorf("dealer result = %v, want win", dealerResult)
	}
	if playerResult != protocol.ResultWin {
		t.Errorf("player result = %v, want win", playerResult)
	}
	player, dealer := round.Hands()
	if player.Total() != 21 || dealer.Total() != 25 {
		t.Errorf("client view totals = %d vs %d, want 21 vs 25", player.Total(), dealer.Total())
	}
}

func TestRoundNilStrategyStandsAtSeventeen(t *testing.T) {
	// No strategy injected: the default hits below 17 and stands at it.
	// Player 10♠ 5♦ = 15 hits into 3♥ = 18, stands. Dealer 10♥ + 9♣ = 19.
	deal := []protocol.Card{
		card(10, protocol.Spades), card(5, protocol.Diamonds),
		card(10, protocol.Hearts), card(9, protocol.Clubs),
		card(3, protocol.Hearts),
	}

	dealerResult, playerResult, table, _ := playScripted(t, deal, nil)

	if dealerResult != protocol.ResultLoss {
		t.Errorf("dealer result = %v, want loss", dealerResult)
	}
	if playerResult != protocol.ResultLoss {
		t.Errorf("player result = %v, want loss", playerResult)
	}
	player, _ := table.Hands()
	if player.Total() != 18 {
		t.Errorf("player total = %d, want 18", player.Total())
	}
}

func TestRoundDealerWinsOnHigherTotal(t *testing.T) {
	// Player 10♠ 8♦ = 18 stands; dealer 10♥ + 9♣ = 19, already ≥17. Loss.
	deal := []protocol.Card{
		card(10, protocol.Spades), card(8, protocol.Diamonds),
		card(10, protocol.Hearts), card(9, protocol.Clubs),
	}

	dealerResult, playerResult, _, _ := playScripted(t, deal, StandAt(17))

	if dealerResult != protocol.ResultLoss {
		t.Errorf("dealer result = %v, want loss", dealerResult)
	}
	if playerResult != protocol.ResultLoss {
		t.Errorf("player result = %v, want loss", playerResult)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		player, dealer int
		want           protocol.Result
	}{
		{"dealer busts", 18, 22, protocol.ResultWin},
		{"dealer busts high", 4, 30, protocol.ResultWin},
		{"player higher", 20, 19, protocol.ResultWin},
		{"dealer higher", 17, 20, protocol.ResultLoss},
		{"equal", 19, 19, protocol.ResultTie},
		{"equal low", 17, 17, protocol.ResultTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.player, tt.dealer); got != tt.want {
				t.Errorf("Resolve(%d, %d) = %v, want %v", tt.player, tt.dealer, got, tt.want)
			}
		})
	}
}
