package network

import (
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/bytethedealer/blackjack-node/pkg/game"
	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// connectTimeout bounds dialing only; once connected the session runs
// without deadlines.
const connectTimeout = 10 * time.Second

// Tally accumulates per-round outcomes from the player's perspective.
type Tally struct {
	Wins   int
	Losses int
	Ties   int
}

// Rounds returns how many rounds the tally covers.
func (t Tally) Rounds() int {
	return t.Wins + t.Losses + t.Ties
}

func (t *Tally) record(result protocol.Result) {
	switch result {
	case protocol.ResultWin:
		t.Wins++
	case protocol.ResultLoss:
		t.Losses++
	case protocol.ResultTie:
		t.Ties++
	}
}

// Client is the player-side session coordinator: one TCP connection, one
// request, then exactly the requested rounds, strictly sequentially.
type Client struct {
	// Name is the team name sent in the request.
	Name string
	// Strategy decides hit or stand. Nil plays the dealer's own rule,
	// standing at 17.
	Strategy game.Strategy
	// Observer receives display events. Nil discards them.
	Observer game.Observer
}

// Play runs one full session against server and returns the tally of the
// rounds that resolved. A failed round aborts the session with an error;
// the rounds already completed stay counted, the aborted one does not.
func (c *Client) Play(server *DiscoveredServer, rounds uint8) (Tally, error) {
	var tally Tally
	if rounds == 0 {
		return tally, errors.New("at least one round required")
	}

	strategy := c.Strategy
	if strategy == nil {
		strategy = game.StandAt(17)
	}
	observer := c.Observer
	if observer == nil {
		observer = game.NopObserver{}
	}

	conn, err := net.DialTimeout("tcp", server.Addr(), connectTimeout)
	if err != nil {
		return tally, fmt.Errorf("connecting to %s: %w", server.Addr(), err)
	}
	defer conn.Close()

	log.Printf("Connected to %q at %s", server.Name, server.Addr())

	if err := protocol.Write(conn, &protocol.RequestMessage{Rounds: rounds, ClientName: c.Name}); err != nil {
		return tally, fmt.Errorf("sending request: %w", err)
	}

	for round := 1; round <= int(rounds); round++ {
		observer.RoundStarted(round, int(rounds))
		result, err := game.NewPlayerRound(conn, strategy, observer).Play()
		if err != nil {
			return tally, fmt.Errorf("round %d: %w", round, err)
		}
		tally.record(result)
	}

	return tally, nil
}
