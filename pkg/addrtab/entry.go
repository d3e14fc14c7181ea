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

// Package addrtab stores and resolves the address tables of the
// front-end boards: one table per board, each entry mapping a register
// name to its physical address, access permission and bit mask.
package addrtab

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	entrySep        = "|"
	entryFieldCount = 3
)

// Entry is one address table record. Permission is carried verbatim
// from the address map ("r", "w", "rw"), the access layer does not
// interpret it. A zero mask is storable but makes masked writes
// no-ops, the loader warns about it.
type Entry struct {
	Address    uint32
	Permission string
	Mask       uint32
}

// Encode serializes the entry into the stored table format
// "<address>|<permission>|<mask>" with address and mask in decimal.
func (e Entry) Encode() string {
	return fmt.Sprintf("%d%s%s%s%d", e.Address, entrySep, e.Permission, entrySep, e.Mask)
}

// DecodeEntry parses a stored table value. Deviations from the
// three-field format are reported as ErrMalformedEntry, never silently
// zeroed.
func DecodeEntry(raw []byte) (Entry, error) {
	fields := strings.Split(string(raw), entrySep)
	if len(fields) != entryFieldCount {
		return Entry{}, ErrMalformedEntry{
			Raw:  string(raw),
			What: fmt.Sprintf("expected %d fields, got %d", entryFieldCount, len(fields)),
		}
	}
	addr, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Entry{}, ErrMalformedEntry{
			Raw:  string(raw),
			What: fmt.Sprintf("bad address field %q", fields[0]),
		}
	}
	mask, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return Entry{}, ErrMalformedEntry{
			Raw:  string(raw),
			What: fmt.Sprintf("bad mask field %q", fields[2]),
		}
	}
	return Entry{
		Address:    uint32(addr),
		Permission: fields[1],
		Mask:       uint32(mask),
	}, nil
}
