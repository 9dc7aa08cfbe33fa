package main

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/bytethedealer/blackjack-node/pkg/game"
	"github.com/bytethedealer/blackjack-node/pkg/network"
	"github.com/bytethedealer/blackjack-node/pkg/protocol"
)

var (
	playerName = flag.String("name", "", "Team name sent to the dealer (asked interactively if empty)")
	udpPort    = flag.Int("udp-port", protocol.UDPBroadcastPort, "UDP port to listen for offers on")
	rounds     = flag.Int("rounds", 0, "Rounds per session, 1-255 (asked interactively if 0)")
	auto       = flag.Bool("auto", false, "Play without prompts, standing at 17")
)

func main() {
	flag.Parse()

	printTitle()

	name := *playerName
	if name == "" && !*auto {
		name, _ = pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your team name").Show()
	}
	if name == "" {
		name = "Anonymous"
	}
	pterm.Info.Printfln("Playing as: %s", name)
	pterm.Println()

	var total, won int
	for {
		server, ok := discover()
		if !ok {
			continue
		}

		n := sessionRounds()
		tally, err := playSession(server, name, n)
		if err != nil {
			pterm.Error.Printfln("Session ended early: %v", err)
		}

		total += tally.Rounds()
		won += tally.Wins
		printTally(tally, total, won)

		if *auto {
			break
		}
		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Play another session?").
			WithDefaultValue(true).
			Show()
		if !again {
			break
		}
		pterm.Println()
	}

	pterm.Println("Thanks for playing!")
}

func printTitle() {
	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}
	pterm.Println()
}

// discover listens for dealer offers. Running out of attempts is not
// fatal: the user decides whether to keep waiting.
func discover() (*network.DiscoveredServer, bool) {
	spinner, _ := pterm.DefaultSpinner.Start(
		pterm.Sprintf("Listening for dealer offers on UDP port %d ...", *udpPort))

	server, err := network.ListenForOffers(*udpPort, 0)
	if err != nil {
		spinner.Fail(pterm.Sprintf("Discovery failed: %v", err))
		if !errors.Is(err, network.ErrNoOffer) {
			os.Exit(1)
		}
		if *auto {
			return nil, false
		}
		retry, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("No dealer found. Keep listening?").
			WithDefaultValue(true).
			Show()
		if !retry {
			pterm.Println("Thanks for playing!")
			os.Exit(0)
		}
		return nil, false
	}

	spinner.Success(pterm.Sprintf("Found dealer %q at %s", server.Name, server.Addr()))
	return server, true
}

func sessionRounds() uint8 {
	if *rounds >= 1 && *rounds <= 255 {
		return uint8(*rounds)
	}
	if *auto {
		return 1
	}
	for {
		answer, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("How many rounds? (1-255)").
			WithDefaultValue("1").
			Show()
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= 255 {
			return uint8(n)
		}
		pterm.Error.Println("Enter a number between 1 and 255")
	}
}

func playSession(server *network.DiscoveredServer, name string, n uint8) (network.Tally, error) {
	client := &network.Client{
		Name:     name,
		Observer: &terminalObserver{},
	}
	if *auto {
		client.Strategy = game.StandAt(17)
	} else {
		client.Strategy = promptStrategy
	}
	return client.Play(server, n)
}

// promptStrategy asks the user to hit or stand.
func promptStrategy(total int, hand game.Hand) protocol.Action {
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(pterm.Sprintf("Your hand: %s (%d)", renderHand(hand), total)).
		WithOptions([]string{"Hit", "Stand"}).
		Show()
	if choice == "Hit" {
		return protocol.ActionHit
	}
	return protocol.ActionStand
}

func printTally(tally network.Tally, total, won int) {
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	summary := pterm.Sprintf("Session: %d won / %d lost / %d tied", tally.Wins, tally.Losses, tally.Ties)
	if total > 0 {
		summary += pterm.Sprintf("\nOverall win rate: %.0f%% (%d of %d rounds)",
			100*float64(won)/float64(total), won, total)
	}
	pterm.Println(box.WithTitle(pterm.LightYellow("|RESULTS|")).WithTitleTopCenter().Sprint(summary))
}
