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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDevFile creates a zeroed file standing in for the mapped
// device node.
func newTestDevFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uio0")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

// TestDevMemReadWrite verifies the little-endian word access at byte
// addresses.
func TestDevMemReadWrite(t *testing.T) {
	path := newTestDevFile(t, 64)
	dev, err := OpenDevMem(path)
	require.NoError(t, err)
	defer dev.Close()

	require.NoError(t, dev.Write(0x10, 0xABCD1234))

	value, err := dev.Read(0x10)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCD1234), value)

	// the word is stored little-endian at the byte address
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x34, 0x12, 0xCD, 0xAB}, raw[0x10:0x14])

	// neighbors stay zero
	value, err = dev.Read(0x14)
	require.NoError(t, err)
	assert.Zero(t, value)
}

// TestDevMemReadBeyondDevice verifies that access outside the device
// window surfaces as an error.
func TestDevMemReadBeyondDevice(t *testing.T) {
	path := newTestDevFile(t, 8)
	dev, err := OpenDevMem(path)
	require.NoError(t, err)
	defer dev.Close()

	_, err = dev.Read(0x100)
	assert.Error(t, err)
}

// TestOpenDevMemMissing verifies that a missing device node fails at
// open time, not at first access.
func TestOpenDevMemMissing(t *testing.T) {
	_, err := OpenDevMem(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// TestOpenDispatch verifies the device spec dispatch used by the
// server when it opens one bus per configured board.
func TestOpenDispatch(t *testing.T) {
	_, err := Open("")
	var badSpec ErrBadDeviceSpec
	require.ErrorAs(t, err, &badSpec)

	bus, err := Open("sim")
	require.NoError(t, err)
	defer bus.Close()
	_, ok := bus.(*SimBus)
	assert.True(t, ok)

	path := newTestDevFile(t, 16)
	dev, err := Open(path)
	require.NoError(t, err)
	defer dev.Close()
	_, ok = dev.(*DevMem)
	assert.True(t, ok)
}
