package organ

import (
	"encoding/hex"

	"go.dedis.ch/kyber/v4/util/random"
)

// NewRecordID returns a random 128-bit identifier, hex encoded.
func NewRecordID() string {
	return hex.EncodeToString(random.Bits(128, false, random.New()))
}
