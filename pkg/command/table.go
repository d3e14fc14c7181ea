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

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/fe-daq/go-feb/pkg/addrtab"
	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/reg"
)

// LoadTable parses an XML address map file and persists it as the
// address table of the given board. It returns the number of
// registers loaded.
func LoadTable(cfg *config.Config, board, path string) (int, error) {
	store, err := addrtab.NewStore(context.Background(), cfg)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.LoadFile(board, path)
}

// DumpTable writes every entry of a board's address table to w, one
// register per line.
func DumpTable(cfg *config.Config, board string, w io.Writer) error {
	store, err := addrtab.NewStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.ForEach(board, func(name string, entry addrtab.Entry) error {
		_, err := fmt.Fprintf(w, "%-48s 0x%08x 0x%08x %-3s %2d\n",
			name, entry.Address, entry.Mask, entry.Permission, reg.NumNonzeroBits(entry.Mask))
		return err
	})
}

// CountTable returns the number of entries in a board's address table.
func CountTable(cfg *config.Config, board string) (int, error) {
	store, err := addrtab.NewStore(context.Background(), cfg)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.Count(board)
}

// DescribeRegister resolves a register name against a board's address
// table without touching the hardware bus.
func DescribeRegister(cfg *config.Config, board, name string) (addrtab.Entry, error) {
	store, err := addrtab.NewStore(context.Background(), cfg)
	if err != nil {
		return addrtab.Entry{}, err
	}
	defer store.Close()
	return store.Get(board, name)
}
