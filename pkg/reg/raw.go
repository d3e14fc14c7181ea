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

package reg

import (
	"github.com/fe-daq/go-feb/pkg/mem"
)

// ReadRawAddress issues one unmasked read at an already resolved
// address. The two raw functions are the only places that touch the
// bus, every other operation in this package is built on them. No
// retry: a transport failure lands on the sink and aborts the
// operation.
func ReadRawAddress(bus mem.Bus, addr uint32, rsp *Response) (uint32, error) {
	value, err := bus.Read(addr)
	if err != nil {
		fault := ErrBusFault{Op: "read", Addr: addr, Err: err}
		rsp.SetError(fault.Error())
		return 0, fault
	}
	return value, nil
}

// WriteRawAddress issues one unmasked write at an already resolved
// address. Same failure contract as ReadRawAddress.
func WriteRawAddress(bus mem.Bus, addr uint32, value uint32, rsp *Response) error {
	if err := bus.Write(addr, value); err != nil {
		fault := ErrBusFault{Op: "write", Addr: addr, Err: err}
		rsp.SetError(fault.Error())
		return fault
	}
	return nil
}
