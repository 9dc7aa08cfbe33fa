// Package network hosts and joins blackjack sessions: the dealer's TCP
// accept loop and UDP offer broadcaster on one side, the player's offer
// listener and session coordinator on the other.
package network

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/bytethedealer/blackjack-node/pkg/game"
	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// requestTimeout bounds how long a fresh connection may take to send its
// request. Once a session is established the player may think for as long
// as they like, so no further deadlines apply.
const requestTimeout = 30 * time.Second

// Stats is a snapshot of the dealer's counters. Wins, losses and ties are
// counted from the dealer's perspective.
type Stats struct {
	ActiveSessions int    `json:"activeSessions"`
	SessionsServed uint64 `json:"sessionsServed"`
	RoundsPlayed   uint64 `json:"roundsPlayed"`
	Wins           uint64 `json:"wins"`
	Losses         uint64 `json:"losses"`
	Ties           uint64 `json:"ties"`
}

// GameServer hosts blackjack sessions. It accepts TCP connections on an
// OS-assigned port and advertises that port over UDP broadcast. Every
// accepted connection gets its own goroutine and its own deck; no mutable
// state is shared across sessions except the stats counters.
type GameServer struct {
	Name string

	udpPort  int
	listener net.Listener
	cancel   context.CancelFunc

	mu        sync.RWMutex
	stats     Stats
	startTime time.Time
}

// NewGameServer creates a server that advertises itself as name on the
// given discovery port.
func NewGameServer(name string, udpPort int) *GameServer {
	return &GameServer{Name: name, udpPort: udpPort}
}

// Start binds the session listener and launches the accept loop and the
// offer broadcaster.
func (s *GameServer) Start() error {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return fmt.Errorf("binding session listener: %w", err)
	}
	s.listener = listener
	s.startTime = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	log.Printf("Game server %q listening on %s", s.Name, listener.Addr())

	go s.broadcastLoop(ctx)
	go s.acceptLoop()

	return nil
}

// Stop cancels the broadcaster and closes the listener. Sessions already
// in flight run to completion on their own connections.
func (s *GameServer) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// TCPPort returns the session port chosen by the OS. It travels to
// clients only inside offer messages.
func (s *GameServer) TCPPort() uint16 {
	return uint16(s.listener.Addr().(*net.TCPAddr).Port)
}

// UDPPort returns the discovery port offers are broadcast on.
func (s *GameServer) UDPPort() int {
	return s.udpPort
}

// Uptime returns how long the server has been running.
func (s *GameServer) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Stats returns a snapshot of the session counters.
func (s *GameServer) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// acceptLoop accepts incoming connections until the listener closes.
func (s *GameServer) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			log.Printf("Accept loop stopped: %v", err)
			return
		}
		go s.handleSession(conn)
	}
}

// handleSession serves exactly one game session: one request, then the
// requested number of rounds. A misbehaving peer costs only its own
// connection, never the server.
func (s *GameServer) handleSession(conn net.Conn) {
	defer conn.Close()

	log.Printf("New connection from %s", conn.RemoteAddr())

	if err := conn.SetReadDeadline(time.Now().Add(requestTimeout)); err != nil {
		log.Printf("Setting request deadline for %s: %v", conn.RemoteAddr(), err)
		return
	}
	req, err := protocol.ReadRequest(conn)
	if err != nil {
		log.Printf("Invalid request from %s: %v", conn.RemoteAddr(), err)
		return
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		log.Printf("Clearing deadline for %s: %v", conn.RemoteAddr(), err)
		return
	}
	if req.Rounds == 0 {
		log.Printf("Rejecting zero-round request from %q", req.ClientName)
		return
	}

	log.Printf("%q wants to play %d rounds", req.ClientName, req.Rounds)
	s.sessionStarted()
	defer s.sessionEnded()

	table := game.NewTable(conn, game.NewDeck())
	for round := 1; round <= int(req.Rounds); round++ {
		result, err := table.PlayRound()
		if err != nil {
			// The aborted round is not tallied.
			log.Printf("Session with %q ended in round %d: %v", req.ClientName, round, err)
			return
		}
		player, dealer := table.Hands()
		log.Printf("Round %d vs %q: player %s (%d) dealer %s (%d) -> %s",
			round, req.ClientName, player, player.Total(), dealer, dealer.Total(), result)
		s.recordResult(result)
	}

	log.Printf("Session with %q completed", req.ClientName)
}

func (s *GameServer) sessionStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.ActiveSessions++
	s.stats.SessionsServed++
}

func (s *GameServer) sessionEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.ActiveSessions--
}

// recordResult tallies one finished round from the dealer's perspective:
// a player win is a dealer loss and vice versa.
func (s *GameServer) recordResult(result protocol.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.RoundsPlayed++
	switch result {
	case protocol.ResultWin:
		s.stats.Losses++
	case protocol.ResultLoss:
		s.stats.Wins++
	case protocol.ResultTie:
		s.stats.Ties++
	}
}
