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

package mem

import (
	"fmt"
)

// ErrBadDeviceSpec returned when a board device spec is empty or
// cannot be understood by Open
type ErrBadDeviceSpec struct {
	Spec string
}

func (e ErrBadDeviceSpec) Error() string {
	return fmt.Sprintf("Bad bus device spec: %q", e.Spec)
}

// ErrSimFault returned by the simulated bus for addresses with an
// injected fault
type ErrSimFault struct {
	Addr uint32
}

func (e ErrSimFault) Error() string {
	return fmt.Sprintf("Simulated bus fault at address 0x%08x", e.Addr)
}

// ErrLinkFault returned when the board answers a bus request with a
// non-zero completion status
type ErrLinkFault struct {
	Addr   uint32
	Status uint32
}

func (e ErrLinkFault) Error() string {
	return fmt.Sprintf("Bus fault reported by board at address 0x%08x (status %d)", e.Addr, e.Status)
}
