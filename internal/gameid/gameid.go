// Package gameid generates hand identifiers: UUIDv7 values rendered as
// 26-character lowercase Crockford base32 strings, in the TypeID style.
// Ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id.
const Length = 26

// Generator handles id generation with configurable randomness
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator drawing random bits from r. A nil reader
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new id using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new id. The timestamp portion always comes from the
// wall clock; only the random portion is drawn from the generator's reader.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are prefixed
// with two zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an id produced by Encode.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, s[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit < 0 || v&(0x10>>b) == 0 {
				continue
			}
			id[bit/8] |= 0x80 >> (bit % 8)
		}
	}
	return id, nil
}

// Validate checks if an id is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// Check first character doesn't exceed 7 (to ensure it represents ≤ 128 bits)
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
