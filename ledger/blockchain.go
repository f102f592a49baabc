package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// AppendHook is called with the ledger name and the new block after every
// successful append.
type AppendHook func(name string, b Block)

// Option configures a Ledger.
type Option func(*Ledger)

// WithAppendHook registers a hook invoked after each append. Hooks run outside
// the ledger lock and must not append to the same ledger synchronously.
func WithAppendHook(hook AppendHook) Option {
	return func(l *Ledger) {
		l.hooks = append(l.hooks, hook)
	}
}

// WithClock overrides the time source used for block timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger is a named append-only chain of blocks.
type Ledger struct {
	name   string
	mu     sync.RWMutex // guards blocks
	blocks []Block
	hooks  []AppendHook
	now    func() time.Time
}

// Entry is a payload already serialized for a ledger, ready to be appended
// without any chance of failure.
type Entry struct {
	data string
}

// New creates a ledger holding only its genesis block.
// The genesis block has index 0, previous hash "0" and the given marker as payload.
func New(name, marker string, opts ...Option) *Ledger {
	l := &Ledger{
		name: name,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.blocks = []Block{newBlock(0, "0", marker, l.now())}
	return l
}

// Name returns the label the ledger was created with.
func (l *Ledger) Name() string {
	return l.name
}

// Encode serializes payload for this ledger. It returns an *EncodingError if
// the payload cannot be represented. HTML characters (& < >) are stored
// unescaped.
func (l *Ledger) Encode(payload any) (Entry, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return Entry{}, &EncodingError{Ledger: l.name, Err: err}
	}
	return Entry{data: string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))}, nil
}

// Append serializes payload and chains it to the current tail.
// On error the ledger is left untouched.
func (l *Ledger) Append(payload any) (Block, error) {
	e, err := l.Encode(payload)
	if err != nil {
		return Block{}, err
	}
	return l.AppendEntry(e), nil
}

// AppendEntry chains an encoded entry to the current tail and returns the new block.
//
// Thread-safety: appends are serialized per ledger, so two writers can never
// link to the same tail.
func (l *Ledger) AppendEntry(e Entry) Block {
	l.mu.Lock()
	latest := l.blocks[len(l.blocks)-1]
	b := newBlock(latest.Index+1, latest.Hash, e.data, l.now())
	l.blocks = append(l.blocks, b)
	l.mu.Unlock()

	for _, hook := range l.hooks {
		hook(l.name, b)
	}
	return b
}

// Blocks returns the chain in order. The returned slice is a snapshot shared
// with the ledger and must not be modified.
func (l *Ledger) Blocks() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[:len(l.blocks):len(l.blocks)]
}

// Len returns the number of blocks, genesis included.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.blocks)
}

// Latest returns the most recently appended block.
func (l *Ledger) Latest() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[len(l.blocks)-1]
}

// Get retrieves a block by its index in the chain.
func (l *Ledger) Get(index int) (Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.blocks) {
		return Block{}, fmt.Errorf("ledger %s: block %d: %w", l.name, index, ErrIndexOutOfRange)
	}
	return l.blocks[index], nil
}

// Search returns, in chain order, every block whose rendered payload contains
// term, ignoring case. The genesis block is searched too, and an empty term
// matches every block.
func (l *Ledger) Search(term string) []Block {
	needle := strings.ToLower(term)
	var out []Block
	for _, b := range l.Blocks() {
		if strings.Contains(strings.ToLower(b.Render()), needle) {
			out = append(out, b)
		}
	}
	return out
}

// Verify validates the integrity of the entire ledger.
func (l *Ledger) Verify() error {
	if err := VerifyBlocks(l.Blocks()); err != nil {
		return fmt.Errorf("ledger %s: %w", l.name, err)
	}
	return nil
}

// VerifyBlocks checks a chain given as a slice: the genesis block must have
// previous hash "0", and each following block must have a sequential index,
// link to its predecessor's hash and carry a correctly computed hash.
func VerifyBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("empty chain")
	}

	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != "0" {
		return fmt.Errorf("invalid genesis block")
	}
	if genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis hash")
	}

	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock verifies that a block is valid relative to the previous block.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}

	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}

	expectedHash := calculateHash(current)
	if current.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, current.Hash)
	}

	return nil
}
