package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

// ErrNoOffer reports that the attempt budget ran out without a single
// valid offer. It is recoverable: callers retry discovery from scratch.
var ErrNoOffer = errors.New("no offer found")

const (
	// defaultAttempts is the discovery budget: one read per second.
	defaultAttempts = 60

	attemptTimeout = time.Second
)

// DiscoveredServer describes one reachable dealer, assembled from an
// offer datagram and its sender address. It has no lifecycle beyond
// handing an address to the session coordinator.
type DiscoveredServer struct {
	IP   net.IP
	Port uint16
	Name string
}

// Addr returns the host:port to dial for a session.
func (d *DiscoveredServer) Addr() string {
	return net.JoinHostPort(d.IP.String(), strconv.Itoa(int(d.Port)))
}

// ListenForOffers binds the discovery port and returns the first offer
// that decodes, together with the sender's IP. Malformed, undersized or
// foreign datagrams are skipped silently. After the attempt budget runs
// out with no valid offer, ErrNoOffer is returned. attempts <= 0 selects
// the default budget.
func ListenForOffers(udpPort, attempts int) (*DiscoveredServer, error) {
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	conn, err := discoverySocket(udpPort)
	if err != nil {
		return nil, fmt.Errorf("binding discovery port %d: %w", udpPort, err)
	}
	defer conn.Close()

	log.Printf("Listening for offers on UDP port %d", udpPort)

	buf := make([]byte, 1024)
	for attempt := 0; attempt < attempts; {
		if err := conn.SetReadDeadline(time.Now().Add(attemptTimeout)); err != nil {
			return nil, err
		}
		n, sender, err := conn.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				attempt++
				continue
			}
			return nil, err
		}

		var offer protocol.OfferMessage
		if err := offer.Decode(buf[:n]); err != nil {
			// Garbage or foreign traffic on the shared port.
			continue
		}
		udpAddr, ok := sender.(*net.UDPAddr)
		if !ok {
			continue
		}

		log.Printf("Received offer from %s (server %q, TCP port %d)", udpAddr.IP, offer.ServerName, offer.TCPPort)
		return &DiscoveredServer{IP: udpAddr.IP, Port: offer.TCPPort, Name: offer.ServerName}, nil
	}

	return nil, ErrNoOffer
}

// discoverySocket binds the shared discovery port with SO_REUSEADDR so
// several clients on one host can listen side by side.
func discoverySocket(port int) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	return lc.ListenPacket(context.Background(), "udp4", ":"+strconv.Itoa(port))
}
