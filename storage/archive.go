// Package storage mirrors ledger blocks into a LevelDB database so the
// history can be inspected after the process exits.
//
// Keys, per ledger:
//   - "<ledger>/block_<index>" => block JSON (index zero padded, so keys sort by index)
//   - "<ledger>/hash_<hash>"   => block JSON
//   - "<ledger>/height"        => highest archived index
//
// The archive is an audit copy. Ledgers are never restored from it.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/luca-patrignani/organ-ledger/ledger"
)

// ErrNotFound is returned when no archived block matches a lookup.
var ErrNotFound = errors.New("block not found in archive")

// Archive is a LevelDB backed copy of ledger blocks.
type Archive struct {
	db *leveldb.DB
	mu sync.Mutex // serializes height updates
}

// Open opens (or creates) an archive at path.
func Open(path string) (*Archive, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// OpenMemory opens an archive held in memory.
func OpenMemory() (*Archive, error) {
	db, err := leveldb.Open(lvstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func blockKey(name string, index int) []byte {
	return []byte(fmt.Sprintf("%s/block_%010d", name, index))
}

func hashKey(name, hash string) []byte {
	return []byte(fmt.Sprintf("%s/hash_%s", name, hash))
}

func heightKey(name string) []byte {
	return []byte(name + "/height")
}

// Put stores b under both its index and its hash.
func (a *Archive) Put(name string, b ledger.Block) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	batch := new(leveldb.Batch)
	batch.Put(blockKey(name, b.Index), data)
	batch.Put(hashKey(name, b.Hash), data)
	if h, ok, err := a.height(name); err != nil {
		return err
	} else if !ok || b.Index > h {
		batch.Put(heightKey(name), []byte(strconv.Itoa(b.Index)))
	}
	if err := a.db.Write(batch, nil); err != nil {
		return fmt.Errorf("archive %s block %d: %w", name, b.Index, err)
	}
	return nil
}

// Height returns the highest archived index for name.
func (a *Archive) Height(name string) (int, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height(name)
}

func (a *Archive) height(name string) (int, bool, error) {
	v, err := a.db.Get(heightKey(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	h, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false, fmt.Errorf("corrupt height for %s: %w", name, err)
	}
	return h, true, nil
}

// Block returns the archived block of name at index.
func (a *Archive) Block(name string, index int) (ledger.Block, error) {
	return a.get(blockKey(name, index))
}

// BlockByHash returns the archived block of name with the given hash.
func (a *Archive) BlockByHash(name, hash string) (ledger.Block, error) {
	return a.get(hashKey(name, hash))
}

func (a *Archive) get(key []byte) (ledger.Block, error) {
	data, err := a.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return ledger.Block{}, ErrNotFound
	}
	if err != nil {
		return ledger.Block{}, err
	}
	var b ledger.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return ledger.Block{}, fmt.Errorf("decode archived block: %w", err)
	}
	return b, nil
}

// Blocks returns every archived block of name in index order.
func (a *Archive) Blocks(name string) ([]ledger.Block, error) {
	iter := a.db.NewIterator(util.BytesPrefix([]byte(name+"/block_")), nil)
	defer iter.Release()

	var out []ledger.Block
	for iter.Next() {
		var b ledger.Block
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			return nil, fmt.Errorf("decode archived block %s: %w", iter.Key(), err)
		}
		out = append(out, b)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify checks the hash chain of the archived copy of name.
func (a *Archive) Verify(name string) error {
	blocks, err := a.Blocks(name)
	if err != nil {
		return err
	}
	if err := ledger.VerifyBlocks(blocks); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}

// Hook returns a ledger append hook writing every new block to the archive.
// Failures are logged and never reach the ledger.
func (a *Archive) Hook(logger *slog.Logger) ledger.AppendHook {
	return func(name string, b ledger.Block) {
		if err := a.Put(name, b); err != nil {
			logger.Error("archive write failed", "ledger", name, "block", b.Index, "err", err)
			return
		}
		logger.Debug("block archived", "ledger", name, "block", b.Index, "hash", b.Hash)
	}
}

// Reset deletes every archived key of name.
func (a *Archive) Reset(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	iter := a.db.NewIterator(util.BytesPrefix([]byte(name+"/")), nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	err := iter.Error()
	iter.Release()
	if err != nil {
		return fmt.Errorf("iterator error during reset of %s: %w", name, err)
	}
	return a.db.Write(batch, nil)
}

// Attach starts a fresh archive for every ledger in reg: previous contents are
// reset and the current chain, genesis included, is stored. Blocks appended
// later reach the archive through Hook.
func (a *Archive) Attach(reg *ledger.Registry) error {
	for _, name := range reg.Names() {
		l, err := reg.Get(name)
		if err != nil {
			return err
		}
		if err := a.Reset(name); err != nil {
			return err
		}
		for _, b := range l.Blocks() {
			if err := a.Put(name, b); err != nil {
				return err
			}
		}
	}
	return nil
}
