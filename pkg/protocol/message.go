package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrMessageTooShort = errors.New("message shorter than fixed size")
	ErrInvalidMagic    = errors.New("invalid magic cookie")
	ErrInvalidType     = errors.New("invalid message type")
	ErrInvalidAction   = errors.New("unknown action token")
	ErrInvalidCard     = errors.New("invalid card encoding")
	ErrInvalidResult   = errors.New("invalid result code")
)

// Message is any fixed-size wire message.
type Message interface {
	Encode() []byte
}

// Write encodes m and writes it to w in one call.
func Write(w io.Writer, m Message) error {
	_, err := w.Write(m.Encode())
	return err
}

// padName truncates name to the fixed field size and right-pads with NULs.
func padName(dst []byte, name string) {
	raw := []byte(name)
	if len(raw) > NameLength {
		raw = raw[:NameLength]
	}
	copy(dst, raw)
	for i := len(raw); i < NameLength; i++ {
		dst[i] = 0x00
	}
}

// unpadName strips trailing NUL padding from a name field.
func unpadName(src []byte) string {
	return string(bytes.TrimRight(src[:NameLength], "\x00"))
}

// ===== OFFER =====

// OfferMessage advertises a reachable dealer over UDP broadcast: the TCP
// port game sessions are served on and the server's display name.
type OfferMessage struct {
	TCPPort    uint16
	ServerName string
}

// Encode encodes the offer to its fixed 39-byte layout.
func (m *OfferMessage) Encode() []byte {
	buf := make([]byte, OfferSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = MsgTypeOffer
	binary.BigEndian.PutUint16(buf[5:7], m.TCPPort)
	padName(buf[7:], m.ServerName)
	return buf
}

// Decode decodes an offer from buf. Short or foreign datagrams are
// rejected with a sentinel error and no fields are consumed.
func (m *OfferMessage) Decode(buf []byte) error {
	if len(buf) < OfferSize {
		return ErrMessageTooShort
	}
	if binary.BigEndian.Uint32(buf[0:4]) != MagicCookie {
		return ErrInvalidMagic
	}
	if buf[4] != MsgTypeOffer {
		return ErrInvalidType
	}
	m.TCPPort = binary.BigEndian.Uint16(buf[5:7])
	m.ServerName = unpadName(buf[7:])
	return nil
}

// ===== REQUEST =====

// RequestMessage opens a game session: how many rounds the client wants
// to play and its display name.
type RequestMessage struct {
	Rounds     uint8
	ClientName string
}

// Encode encodes the request to its fixed 38-byte layout.
func (m *RequestMessage) Encode() []byte {
	buf := make([]byte, RequestSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = MsgTypeRequest
	buf[5] = m.Rounds
	padName(buf[6:], m.ClientName)
	return buf
}

// Decode decodes a request from buf.
func (m *RequestMessage) Decode(buf []byte) error {
	if len(buf) < RequestSize {
		return ErrMessageTooShort
	}
	if binary.BigEndian.Uint32(buf[0:4]) != MagicCookie {
		return ErrInvalidMagic
	}
	if buf[4] != MsgTypeRequest {
		return ErrInvalidType
	}
	m.Rounds = buf[5]
	m.ClientName = unpadName(buf[6:])
	return nil
}

// ===== CLIENT PAYLOAD =====

// ClientPayload carries the player's hit/stand decision during a round.
type ClientPayload struct {
	Action Action
}

// Encode encodes the payload to its fixed 10-byte layout.
func (m *ClientPayload) Encode() []byte {
	buf := make([]byte, ClientPayloadSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = MsgTypePayload
	token := actionStandToken
	if m.Action == ActionHit {
		token = actionHitToken
	}
	copy(buf[5:], token[:])
	return buf
}

// Decode decodes a client payload from buf. Only the two fixed action
// tokens are accepted.
func (m *ClientPayload) Decode(buf []byte) error {
	if len(buf) < ClientPayloadSize {
		return ErrMessageTooShort
	}
	if binary.BigEndian.Uint32(buf[0:4]) != MagicCookie {
		return ErrInvalidMagic
	}
	if buf[4] != MsgTypePayload {
		return ErrInvalidType
	}
	var token [ActionLength]byte
	copy(token[:], buf[5:5+ActionLength])
	switch token {
	case actionHitToken:
		m.Action = ActionHit
	case actionStandToken:
		m.Action = ActionStand
	default:
		return ErrInvalidAction
	}
	return nil
}

// ===== SERVER PAYLOAD =====

// ServerPayload carries one dealt card and the running result code from
// the dealer to the player. Pure acknowledgments and the final-result
// message carry the rank "00" sentinel instead of a card.
type ServerPayload struct {
	Result Result
	Card   Card
}

// HasCard reports whether the payload carries a real card.
func (m *ServerPayload) HasCard() bool {
	return m.Card.Rank != 0
}

// Encode encodes the payload to its fixed 9-byte layout. The rank is a
// zero-padded two-digit ASCII decimal; sentinel payloads are encoded
// with suit 'H'.
func (m *ServerPayload) Encode() []byte {
	buf := make([]byte, ServerPayloadSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = MsgTypePayload
	buf[5] = byte(m.Result)
	buf[6] = '0' + m.Card.Rank/10
	buf[7] = '0' + m.Card.Rank%10
	suit := m.Card.Suit
	if m.Card.Rank == 0 {
		suit = Hearts
	}
	buf[8] = byte(suit)
	return buf
}

// Decode decodes a server payload from buf, validating the result code,
// the rank digit pair and the suit character.
func (m *ServerPayload) Decode(buf []byte) error {
	if len(buf) < ServerPayloadSize {
		return ErrMessageTooShort
	}
	if binary.BigEndian.Uint32(buf[0:4]) != MagicCookie {
		return ErrInvalidMagic
	}
	if buf[4] != MsgTypePayload {
		return ErrInvalidType
	}
	result := Result(buf[5])
	if !result.Valid() {
		return ErrInvalidResult
	}
	hi, lo := buf[6], buf[7]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return ErrInvalidCard
	}
	rank := (hi-'0')*10 + (lo - '0')
	if rank > 13 {
		return ErrInvalidCard
	}
	suit := Suit(buf[8])
	if !suit.Valid() {
		return ErrInvalidCard
	}
	m.Result = result
	m.Card = Card{Rank: rank, Suit: suit}
	return nil
}

// ===== STREAM READERS =====
//
// TCP messages have no framing beyond their fixed size, so each reader
// pulls exactly one message's worth of bytes off the stream.

// ReadRequest reads and decodes one request message from r.
func ReadRequest(r io.Reader) (*RequestMessage, error) {
	buf := make([]byte, RequestSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	msg := &RequestMessage{}
	if err := msg.Decode(buf); err != nil {
		return nil, err
	}
	return msg, nil
}

// ReadClientPayload reads and decodes one client payload from r.
func ReadClientPayload(r io.Reader) (*ClientPayload, error) {
	buf := make([]byte, ClientPayloadSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	msg := &ClientPayload{}
	if err := msg.Decode(buf); err != nil {
		return nil, err
	}
	return msg, nil
}

// ReadServerPayload reads and decodes one server payload from r.
func ReadServerPayload(r io.Reader) (*ServerPayload, error) {
	buf := make([]byte, ServerPayloadSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	msg := &ServerPayload{}
	if err := msg.Decode(buf); err != nil {
		return nil, err
	}
	return msg, nil
}
