package stun

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync"
)

// TxID is a transaction ID: 12 opaque bytes binding a request to its
// response.
type TxID [12]byte

// A TxIDSource yields transaction IDs for new requests. IDs must be
// distinct across concurrent in-flight requests from the same process.
type TxIDSource interface {
	NewTxID() TxID
}

// DefaultTxIDSource is consulted by InitRequest. Tests may swap it to
// pin transaction IDs.
var DefaultTxIDSource TxIDSource = CryptoTxIDSource{}

// NewTxID returns a transaction ID from the default source.
func NewTxID() TxID { return DefaultTxIDSource.NewTxID() }

// CryptoTxIDSource draws random 96-bit IDs.
type CryptoTxIDSource struct{}

func (CryptoTxIDSource) NewTxID() TxID {
	var tx TxID
	if _, err := crand.Read(tx[:]); err != nil {
		// We expect the randomizer to be available here
		panic(err)
	}
	return tx
}

// CounterTxIDSource emits IDs from a shared counter: bytes 0..4 zero,
// bytes 4..12 the big-endian counter value. IDs are unique and
// monotonic within the process but predictable; prefer
// CryptoTxIDSource outside of tests.
type CounterTxIDSource struct {
	mu sync.Mutex
	n  uint64
}

func (s *CounterTxIDSource) NewTxID() TxID {
	s.mu.Lock()
	n := s.n
	s.n++
	s.mu.Unlock()

	var tx TxID
	binary.BigEndian.PutUint64(tx[4:], n)
	return tx
}
