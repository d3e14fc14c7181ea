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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fe-daq/go-feb/pkg/config"
)

func newTestStore(t *testing.T, boards ...string) *Store {
	t.Helper()
	cfg := config.NewConfigAt(filepath.Join(t.TempDir(), "config"))
	cfg.DBPath = filepath.Join(t.TempDir(), "addrtab.db")
	cfg.Boards = nil
	for _, board := range boards {
		cfg.Boards = append(cfg.Boards, &config.BoardConfig{Name: board, Device: "sim"})
	}
	store, err := NewStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

// TestStorePutGet verifies the round trip through the table database.
func TestStorePutGet(t *testing.T) {
	store := newTestStore(t, "amc0")

	entry := Entry{Address: 0x1000, Permission: "rw", Mask: 0x0000FFFF}
	require.NoError(t, store.Put("amc0", "FEB.CTRL.DAC", entry))

	got, err := store.Get("amc0", "FEB.CTRL.DAC")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

// TestStoreGetUnknownName verifies that resolving a name that is not
// in the table fails with a typed error.
func TestStoreGetUnknownName(t *testing.T) {
	store := newTestStore(t, "amc0")

	_, err := store.Get("amc0", "NO.SUCH.REG")
	require.Error(t, err)
	var notFound ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NO.SUCH.REG", notFound.Name)
	assert.Equal(t, "amc0", notFound.Table)
}

// TestStoreUnknownBoard verifies that every operation on a board
// without a table fails with ErrTableNotFound.
func TestStoreUnknownBoard(t *testing.T) {
	store := newTestStore(t, "amc0")

	var tableErr ErrTableNotFound

	_, err := store.Get("amc9", "FEB.CTRL.DAC")
	require.ErrorAs(t, err, &tableErr)

	err = store.Put("amc9", "FEB.CTRL.DAC", Entry{})
	require.ErrorAs(t, err, &tableErr)

	err = store.View("amc9", func(v View) error { return nil })
	require.ErrorAs(t, err, &tableErr)

	_, err = store.Count("amc9")
	require.ErrorAs(t, err, &tableErr)
}

// TestStorePutAll verifies that a whole map lands in one transaction
// and is readable afterwards.
func TestStorePutAll(t *testing.T) {
	store := newTestStore(t, "amc0", "amc1")

	entries := map[string]Entry{
		"FEB.CTRL":     {Address: 0x0, Permission: "rw", Mask: 0xFFFFFFFF},
		"FEB.CTRL.EN":  {Address: 0x0, Permission: "rw", Mask: 0x00000001},
		"FEB.STAT.VER": {Address: 0x4, Permission: "r", Mask: 0xFF000000},
	}
	require.NoError(t, store.PutAll("amc0", entries))

	count, err := store.Count("amc0")
	require.NoError(t, err)
	assert.Equal(t, len(entries), count)

	// the other board's table stays empty
	count, err = store.Count("amc1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

// TestStoreView verifies the scoped read view used by register
// operations: present names resolve to their stored form, absent names
// resolve to nil.
func TestStoreView(t *testing.T) {
	store := newTestStore(t, "amc0")
	entry := Entry{Address: 0x20, Permission: "r", Mask: 0x000000FF}
	require.NoError(t, store.Put("amc0", "FEB.STAT", entry))

	err := store.View("amc0", func(v View) error {
		assert.Equal(t, "amc0", v.Name())
		assert.Equal(t, []byte(entry.Encode()), v.Get("FEB.STAT"))
		assert.Nil(t, v.Get("FEB.MISSING"))
		return nil
	})
	require.NoError(t, err)
}

// TestStoreForEach verifies iteration in key order.
func TestStoreForEach(t *testing.T) {
	store := newTestStore(t, "amc0")
	require.NoError(t, store.PutAll("amc0", map[string]Entry{
		"B": {Address: 2, Mask: 0xFFFFFFFF},
		"A": {Address: 1, Mask: 0xFFFFFFFF},
		"C": {Address: 3, Mask: 0xFFFFFFFF},
	}))

	var names []string
	err := store.ForEach("amc0", func(name string, entry Entry) error {
		names = append(names, name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names)
}
