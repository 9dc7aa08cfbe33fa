package network

import (
	"context"
	"log"
	"net"
	"syscall"
	"time"

	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

const (
	// offerInterval is how often the offer goes out.
	offerInterval = time.Second

	// neighborFanout is how many low host addresses of each local /24
	// receive the offer by unicast, for hotspots that filter broadcast
	// frames but hand out addresses from the bottom of the range.
	neighborFanout = 29
)

// broadcastLoop advertises the session port until ctx is cancelled.
// Delivery is best effort: there is no acknowledgment, and a failed send
// simply waits for the next tick.
func (s *GameServer) broadcastLoop(ctx context.Context) {
	offer := protocol.OfferMessage{TCPPort: s.TCPPort(), ServerName: s.Name}
	packet := offer.Encode()

	conn, err := broadcastSocket()
	if err != nil {
		log.Printf("Offer broadcaster disabled: %v", err)
		return
	}
	defer conn.Close()

	targets := broadcastTargets()
	log.Printf("Broadcasting offers to %d addresses on UDP port %d", len(targets), s.udpPort)

	ticker := time.NewTicker(offerInterval)
	defer ticker.Stop()
	for {
		for _, ip := range targets {
			addr := &net.UDPAddr{IP: ip, Port: s.udpPort}
			if _, err := conn.WriteTo(packet, addr); err != nil {
				// No route, filtered, or the like. Keep fanning out.
				continue
			}
		}
		select {
		case <-ctx.Done():
			log.Println("Offer broadcaster stopped")
			return
		case <-ticker.C:
		}
	}
}

// broadcastSocket opens a UDP socket with SO_BROADCAST set so writes to
// broadcast addresses are permitted.
func broadcastSocket() (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
	return lc.ListenPacket(context.Background(), "udp4", ":0")
}

// broadcastTargets enumerates where offers are sent: the limited
// broadcast address, each interface's directed broadcast address, and the
// unicast neighbor fan-out over each local /24.
func broadcastTargets() []net.IP {
	targets := []net.IP{net.IPv4bcast}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("Listing interface addresses: %v", err)
		return targets
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipnet.IP.To4()
		if ip4 == nil || ip4.IsLoopback() {
			continue
		}
		mask := ipnet.Mask
		if len(mask) == net.IPv6len {
			mask = mask[12:]
		}
		if len(mask) != net.IPv4len {
			continue
		}

		directed := make(net.IP, net.IPv4len)
		for i := range directed {
			directed[i] = ip4[i] | ^mask[i]
		}
		targets = append(targets, directed)

		for host := byte(1); host <= neighborFanout; host++ {
			neighbor := make(net.IP, net.IPv4len)
			copy(neighbor, ip4)
			neighbor[3] = host
			if neighbor.Equal(ip4) {
				continue
			}
			targets = append(targets, neighbor)
		}
	}
	return targets
}
