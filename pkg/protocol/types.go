package protocol

// Protocol constants
const (
	// MagicCookie prefixes every message on the wire.
	MagicCookie uint32 = 0xabcddcba

	// UDPBroadcastPort is the well-known port offers are broadcast on.
	UDPBroadcastPort = 13122

	// NameLength is the fixed on-wire size of a team name.
	NameLength = 32

	// ActionLength is the fixed on-wire size of a player action token.
	ActionLength = 5
)

// Message types
const (
	MsgTypeOffer   uint8 = 0x2 // server -> client, UDP broadcast
	MsgTypeRequest uint8 = 0x3 // client -> server, TCP
	MsgTypePayload uint8 = 0x4 // in-round payload, both directions, TCP
)

// Fixed message sizes in bytes. There is no length-prefixed framing: a
// receiver that knows the message direction always knows how much to read.
const (
	OfferSize         = 4 + 1 + 2 + NameLength // 39
	RequestSize       = 4 + 1 + 1 + NameLength // 38
	ClientPayloadSize = 4 + 1 + ActionLength   // 10
	ServerPayloadSize = 4 + 1 + 1 + 2 + 1      // 9
)

// Result is a round outcome code, always from the player's perspective.
// The dealer negates win/loss when tallying its own statistics.
type Result uint8

const (
	ResultNotOver Result = 0x0
	ResultTie     Result = 0x1
	ResultLoss    Result = 0x2
	ResultWin     Result = 0x3
)

// Valid reports whether r is a known result code.
func (r Result) Valid() bool {
	return r <= ResultWin
}

func (r Result) String() string {
	switch r {
	case ResultNotOver:
		return "not over"
	case ResultTie:
		return "tie"
	case ResultLoss:
		return "loss"
	case ResultWin:
		return "win"
	default:
		return "unknown"
	}
}

// Action is a player decision sent in a client payload.
type Action uint8

const (
	ActionHit Action = iota
	ActionStand
)

// Wire tokens for player actions, exactly ActionLength bytes each.
var (
	actionHitToken   = [ActionLength]byte{'H', 'i', 't', 't', 't'}
	actionStandToken = [ActionLength]byte{'S', 't', 'a', 'n', 'd'}
)

func (a Action) String() string {
	if a == ActionHit {
		return "hit"
	}
	return "stand"
}

// Suit identifies one of the four card suits by its ASCII wire character.
type Suit byte

const (
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
	Spades   Suit = 'S'
)

// Suits lists all four suits in wire order.
var Suits = [4]Suit{Hearts, Diamonds, Clubs, Spades}

// Valid reports whether s is one of the four suit characters.
func (s Suit) Valid() bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return string(s)
}

var rankNames = [14]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// RankName returns the display name of a rank (1=A, 11=J, 12=Q, 13=K).
func RankName(rank uint8) string {
	if int(rank) < len(rankNames) {
		return rankNames[rank]
	}
	return "?"
}

// CardValue returns the blackjack value of a rank: ace counts 11, face
// cards count 10, number cards count their face value. There is no soft
// ace re-valuation anywhere in the protocol.
func CardValue(rank uint8) int {
	switch {
	case rank == 1:
		return 11
	case rank >= 11:
		return 10
	default:
		return int(rank)
	}
}

// Card is one playing card. Rank 0 is the "no card" sentinel used by
// acknowledgment and final-result payloads.
type Card struct {
	Rank uint8
	Suit Suit
}

// Value returns the blackjack value of the card.
func (c Card) Value() int {
	return CardValue(c.Rank)
}

func (c Card) String() string {
	if c.Rank == 0 {
		return "--"
	}
	return RankName(c.Rank) + c.Suit.Symbol()
}
