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
	"encoding/binary"
	"fmt"
	"os"
)

// DevMem is a word bus over a memory-mapped device file, /dev/mem or a
// UIO node on the carrier SoC. Words are little-endian at the byte
// address of the register.
type DevMem struct {
	f *os.File
}

func OpenDevMem(path string) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("mem: could not open device %s: %w", path, err)
	}
	return &DevMem{f: f}, nil
}

func (d *DevMem) Read(addr uint32) (uint32, error) {
	var buf [4]byte
	if _, err := d.f.ReadAt(buf[:], int64(addr)); err != nil {
		return 0, fmt.Errorf("mem: could not read register 0x%08x: %w", addr, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (d *DevMem) Write(addr uint32, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	if _, err := d.f.WriteAt(buf[:], int64(addr)); err != nil {
		return fmt.Errorf("mem: could not write register 0x%08x: %w", addr, err)
	}
	return nil
}

func (d *DevMem) Close() error {
	return d.f.Close()
}
