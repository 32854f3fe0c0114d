package pkg

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/google/uuid"
)

// roomCodeLength - rooms are addressed by short human-typable codes.
const roomCodeLength = 6

const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRoomCode - generates a 6-character uppercase alphanumeric
// room code. Uniqueness among live rooms is the caller's concern.
func GenerateRoomCode() string {
	code := make([]byte, roomCodeLength)

	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeChars))))
		if err != nil {
			// fall back to math/rand if crypto fails
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))] //nolint:gosec // fallback only
			continue
		}

		code[i] = roomCodeChars[n.Int64()]
	}

	return string(code)
}

// NewRoomID - generates a unique identifier for a room.
func NewRoomID() string {
	return uuid.NewString()
}

// NewPlayerID - generates a unique identifier for a player session.
func NewPlayerID() string {
	return uuid.NewString()
}
