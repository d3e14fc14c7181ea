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
	"fmt"
)

// ErrNotFound returned when a register name has no entry in the
// address table
type ErrNotFound struct {
	Table string
	Name  string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("Register not found: %s (table %s)", e.Name, e.Table)
}

// ErrMalformedEntry returned when a stored table value does not decode
// as "<address>|<permission>|<mask>"
type ErrMalformedEntry struct {
	Raw  string
	What string
}

func (e ErrMalformedEntry) Error() string {
	return fmt.Sprintf("Malformed address table entry %q: %s", e.Raw, e.What)
}

// ErrTableNotFound returned when a board has no table in the store,
// which means the board is not in the config the store was opened with
type ErrTableNotFound struct {
	Board string
}

func (e ErrTableNotFound) Error() string {
	return fmt.Sprintf("Address table not found: %s", e.Board)
}

// ErrMalformedMap returned when an address map document cannot be
// flattened into table entries
type ErrMalformedMap struct {
	What string
}

func (e ErrMalformedMap) Error() string {
	return fmt.Sprintf("Malformed address map: %s", e.What)
}
