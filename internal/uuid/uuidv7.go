// Package uuid generates time-ordered UUIDv7 identifiers for database
// primary keys. Ids from one process compare in generation order, even
// within a single millisecond, which the listing queries rely on for
// their tie-break.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	googleuuid "github.com/google/uuid"
)

var (
	genMu    sync.Mutex
	lastMS   uint64
	sequence uint16
)

// New generates a new UUIDv7 string.
//
// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: per-millisecond sequence counter
// - 2 bits: variant (10)
// - 62 bits: random data
//
// The sequence counter keeps same-millisecond ids strictly increasing
// (RFC 9562 section 6.2, method 1). A counter overflow borrows the
// next millisecond.
func New() string {
	var id [16]byte

	genMu.Lock()
	ms := uint64(time.Now().UnixMilli())
	if ms <= lastMS {
		sequence++
		if sequence > 0x0fff {
			lastMS++
			sequence = 0
		}
		ms = lastMS
	} else {
		lastMS = ms
		sequence = 0
	}
	seq := sequence
	genMu.Unlock()

	binary.BigEndian.PutUint64(id[0:8], ms<<16)
	binary.BigEndian.PutUint16(id[6:8], 0x7000|seq)

	if _, err := rand.Read(id[8:]); err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}

	// Variant 10
	id[8] = (id[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
