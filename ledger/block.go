package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Block is a single entry of a ledger.
type Block struct {
	Index     int    `json:"index"`
	Timestamp int64  `json:"timestamp"` // Unix nanoseconds
	PrevHash  string `json:"prev_hash"`
	Data      string `json:"data"` // genesis marker or JSON payload
	Hash      string `json:"hash"`
}

func newBlock(index int, prevHash, data string, ts time.Time) Block {
	b := Block{
		Index:     index,
		Timestamp: ts.UnixNano(),
		PrevHash:  prevHash,
		Data:      data,
	}
	b.Hash = calculateHash(b)
	return b
}

// IsGenesis reports whether b is the first block of its chain.
func (b Block) IsGenesis() bool {
	return b.Index == 0
}

// Decode unmarshals the structured payload of b into v. The genesis block
// carries a plain marker and cannot be decoded.
func (b Block) Decode(v any) error {
	if b.IsGenesis() {
		return ErrGenesisPayload
	}
	if err := json.Unmarshal([]byte(b.Data), v); err != nil {
		return fmt.Errorf("decode block %d: %w", b.Index, err)
	}
	return nil
}

// Render returns the human readable form of the payload.
func (b Block) Render() string {
	return b.Data
}

// Time returns the creation time of the block.
func (b Block) Time() time.Time {
	return time.Unix(0, b.Timestamp)
}

// calculateHash computes the SHA256 hash of a block over its index, previous
// hash, serialized payload and timestamp, in that order.
func calculateHash(b Block) string {
	data := fmt.Sprintf("%d%s%s%d", b.Index, b.PrevHash, b.Data, b.Timestamp)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
