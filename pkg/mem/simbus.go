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
	"sync"
)

// SimBus is an in-memory bus for development without hardware. Reads
// of untouched addresses return zero like a cleared register file.
// Faults can be injected per address to exercise the failure paths
// deterministically.
type SimBus struct {
	mu     sync.RWMutex
	words  map[uint32]uint32
	faults map[uint32]bool
}

func NewSimBus() *SimBus {
	return &SimBus{
		words:  make(map[uint32]uint32),
		faults: make(map[uint32]bool),
	}
}

func (s *SimBus) Read(addr uint32) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.faults[addr] {
		return 0, ErrSimFault{Addr: addr}
	}
	return s.words[addr], nil
}

func (s *SimBus) Write(addr uint32, value uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.faults[addr] {
		return ErrSimFault{Addr: addr}
	}
	s.words[addr] = value
	return nil
}

// SetFault makes every access to addr fail until ClearFault.
func (s *SimBus) SetFault(addr uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[addr] = true
}

func (s *SimBus) ClearFault(addr uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.faults, addr)
}

func (s *SimBus) Close() error {
	return nil
}
