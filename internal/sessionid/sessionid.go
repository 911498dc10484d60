// Package sessionid issues opaque, time-sortable identifiers for web sessions.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id.
const Length = 26

// Generator issues ids from a clock and a source of random bytes.
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator returns a generator. A nil clock uses the real clock and a nil
// reader uses crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// New returns an id from the real clock and crypto/rand.
func New() string {
	return NewGenerator(nil, nil).New()
}

// New returns a fresh id: a UUIDv7 encoded as 26 base32 characters, so ids
// sort by creation time.
func (g *Generator) New() string {
	var uuid [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.random, uuid[6:]); err != nil {
		panic("sessionid: reading random bytes: " + err.Error())
	}
	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encode(uuid)
}

// encode writes the 128 bits as a 130-bit big-endian number, two leading zero
// bits first, five bits per character.
func encode(data [16]byte) string {
	var sb strings.Builder
	sb.Grow(Length)

	acc, bits := uint(0), uint(2)
	for _, b := range data {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
		acc &= 1<<bits - 1
	}
	return sb.String()
}

// Validate reports whether id could have been issued by a Generator.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session id first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}
