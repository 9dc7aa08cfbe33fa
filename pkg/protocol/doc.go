// Package protocol implements the blackjack discovery-and-play wire protocol.
//
// The protocol package defines the message types and their binary
// encoding/decoding. It is pure and stateless: no sockets, no game state.
//
// # Protocol Overview
//
// A dealer server advertises itself with periodic UDP broadcast offers on a
// well-known port. A client picks up an offer, opens a TCP connection to the
// advertised port, sends one request naming how many rounds it wants to play,
// and the two sides then exchange fixed-size payload messages turn by turn.
//
// # Message Types
//
//	Offer   (0x2): server -> client over UDP. TCP port + server name.
//	Request (0x3): client -> server over TCP. Round count + client name.
//	Payload (0x4): in-round traffic over TCP, both directions.
//
// A client payload carries a five-byte action token ("Hittt" or "Stand").
// A server payload carries a result code and one card; acknowledgments and
// the final result use the rank "00" no-card sentinel.
//
// # Encoding
//
// Every message starts with the four-byte magic cookie 0xabcddcba followed by
// a one-byte type. Multi-byte integers are big-endian. Names are UTF-8,
// right-padded with NULs to exactly 32 bytes. Card ranks travel as two
// zero-padded ASCII digits and suits as one of the ASCII characters
// 'H', 'D', 'C', 'S'. All four messages have a fixed size, so a receiver
// that knows the message direction always knows exactly how many bytes to
// read; there is no length prefix anywhere.
//
// # Validation
//
// Decoding a short buffer, a foreign magic, a wrong type byte, an unknown
// action token, or an ill-formed card field returns a sentinel error and
// leaves no partial state behind. Callers treat such messages as absent;
// whether that is fatal is decided at the session boundary, never here.
package protocol
