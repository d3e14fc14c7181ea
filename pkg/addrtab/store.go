/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package addrtab

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/log"
)

const (
	BucketNamePrefix = "regs_"
)

// Store keeps the address tables of all configured boards in a single
// bbolt database, one bucket per board.
type Store struct {
	context.Context
	DB *bbolt.DB
}

func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	// open the address table database
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	// create buckets for all configured boards
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, board := range cfg.Boards {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(board.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &Store{
		Context: ctx,
		DB:      db,
	}, nil
}

func bucketName(board string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, board)
}

// Close ...
func (s *Store) Close() {
	s.DB.Close()
}

// Put stores a single entry under its register name.
func (s *Store) Put(board, name string, entry Entry) error {
	log.Debug("Putting table entry: %s %s = %s", board, name, entry.Encode())
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		return b.Put([]byte(name), []byte(entry.Encode()))
	})
}

// PutAll stores a whole address map in one transaction, so a partially
// loaded table is never visible.
func (s *Store) PutAll(board string, entries map[string]Entry) error {
	log.Debug("Putting %d table entries for board %s", len(entries), board)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		for name, entry := range entries {
			if err := b.Put([]byte(name), []byte(entry.Encode())); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get resolves a single register name, a one-shot convenience around
// View for callers outside a register operation.
func (s *Store) Get(board, name string) (Entry, error) {
	var entry Entry
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		raw := b.Get([]byte(name))
		if raw == nil {
			return ErrNotFound{Table: board, Name: name}
		}
		var err error
		entry, err = DecodeEntry(raw)
		return err
	}); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// View runs fn with a read-only view of one board's table. The view
// borrows the underlying transaction and is only valid inside fn, it
// must not be stored or handed to another goroutine.
func (s *Store) View(board string, fn func(v View) error) error {
	return s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		return fn(View{bucket: b, table: board})
	})
}

// ForEach visits every entry of one board's table in key order.
func (s *Store) ForEach(board string, fn func(name string, entry Entry) error) error {
	return s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		return b.ForEach(func(k, v []byte) error {
			entry, err := DecodeEntry(v)
			if err != nil {
				return err
			}
			return fn(string(k), entry)
		})
	})
}

// Count returns the number of entries in one board's table.
func (s *Store) Count(board string) (int, error) {
	var n int
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return ErrTableNotFound{Board: board}
		}
		n = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// View is a read-only window into one board's address table. Get
// returns nil when the register name is unknown, mirroring the bbolt
// bucket contract.
type View struct {
	bucket *bbolt.Bucket
	table  string
}

func (v View) Get(name string) []byte {
	return v.bucket.Get([]byte(name))
}

// Name returns the board name the view selects.
func (v View) Name() string {
	return v.table
}
