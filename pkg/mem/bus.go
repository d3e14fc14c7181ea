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

// Package mem provides the hardware bus transports the register layer
// runs on: a memory-mapped device file, an FLink UDP link to a remote
// board, and a simulated bus for development and tests.
package mem

import (
	"strings"
)

// Bus is the synchronous transport contract of a register operation:
// one word read, one word write, addressed over the full 32-bit
// space. No retry and no timeout policy here, a failed transaction is
// reported as is.
type Bus interface {
	Read(addr uint32) (uint32, error)
	Write(addr uint32, value uint32) error
}

// Device is a Bus with a lifecycle. Whoever opens a device owns it and
// closes it on shutdown.
type Device interface {
	Bus
	Close() error
}

const (
	SimDeviceSpec   = "sim"
	UDPSchemePrefix = "udp://"
)

// Open builds the bus for a board device spec: "sim" selects the
// simulated bus, "udp://host:port" an FLink UDP link, anything else is
// taken as the path of a memory-mapped device file.
func Open(spec string) (Device, error) {
	switch {
	case spec == "":
		return nil, ErrBadDeviceSpec{Spec: spec}
	case spec == SimDeviceSpec:
		return NewSimBus(), nil
	case strings.HasPrefix(spec, UDPSchemePrefix):
		return NewLink(strings.TrimPrefix(spec, UDPSchemePrefix))
	default:
		return OpenDevMem(spec)
	}
}
