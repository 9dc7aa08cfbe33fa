package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytethedealer/blackjack-node/pkg/api"
	"github.com/bytethedealer/blackjack-node/pkg/network"
	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

const heartbeatInterval = 5 * time.Minute

var (
	name      = flag.String("name", "Byte the Dealer", "Server name announced in offers (32 bytes max)")
	udpPort   = flag.Int("udp-port", protocol.UDPBroadcastPort, "UDP port offers are broadcast to")
	apiPort   = flag.Int("api-port", 8080, "HTTP status API port")
	enableAPI = flag.Bool("api", true, "Enable the HTTP status API")
)

func main() {
	flag.Parse()

	printBanner()

	server := network.NewGameServer(*name, *udpPort)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start game server: %v", err)
	}

	log.Printf("✓ Game server started, offering on TCP port %d", server.TCPPort())

	apiCtx, apiCancel := context.WithCancel(context.Background())
	defer apiCancel()
	if *enableAPI {
		statusAPI := api.NewServer(server, &api.Config{
			Port:       *apiPort,
			EnableCORS: true,
			RateLimit:  100,
		})
		go func() {
			if err := statusAPI.Start(apiCtx); err != nil {
				log.Printf("Status API stopped: %v", err)
			}
		}()
		log.Printf("✓ Status API listening on port %d", *apiPort)
	} else {
		log.Println("Status API disabled")
	}

	go startHeartbeatLoop(server)

	printStatus(server)

	waitForShutdown(server, apiCancel)
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════════╗")
	fmt.Println("║            Blackjack Dealer Server v1.0           ║")
	fmt.Println("║      Broadcast discovery, play over TCP           ║")
	fmt.Println("╚═══════════════════════════════════════════════════╝")
	fmt.Println()
}

func startHeartbeatLoop(server *network.GameServer) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for range ticker.C {
		stats := server.Stats()

		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("💓 Heartbeat")
		log.Printf("   Active sessions: %d", stats.ActiveSessions)
		log.Printf("   Sessions served: %d", stats.SessionsServed)
		log.Printf("   Rounds played: %d (W %d / L %d / T %d)",
			stats.RoundsPlayed, stats.Wins, stats.Losses, stats.Ties)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

func printStatus(server *network.GameServer) {
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("🃏 Dealer Status")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("   Status: ✅ RUNNING\n")
	fmt.Printf("   Name: %s\n", server.Name)
	fmt.Printf("   Session port (TCP): %d\n", server.TCPPort())
	fmt.Printf("   Discovery port (UDP): %d\n", server.UDPPort())
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()
}

func waitForShutdown(server *network.GameServer, apiCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan

	fmt.Println()
	log.Println("Shutting down gracefully...")

	apiCancel()

	if err := server.Stop(); err != nil {
		log.Printf("Error stopping game server: %v", err)
	}

	stats := server.Stats()
	log.Printf("✓ Served %d sessions, %d rounds", stats.SessionsServed, stats.RoundsPlayed)
	log.Println("✓ Game server stopped")
	os.Exit(0)
}
