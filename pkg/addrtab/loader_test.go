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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddressMap = `
<node>
  <node id="FEB" address="0x1000">
    <node id="CTRL" address="0x0" permission="rw">
      <node id="ENABLE" mask="0x1" permission="rw"/>
      <node id="DAC" mask="0xffff0000" permission="rw"/>
    </node>
    <node id="STAT" address="0x4" permission="r">
      <node id="VERSION" mask="0xff" permission="r"/>
    </node>
  </node>
</node>
`

// TestParseAddressMap verifies dotted naming, address accumulation and
// mask defaulting across a nested document.
func TestParseAddressMap(t *testing.T) {
	entries, err := ParseAddressMap(strings.NewReader(testAddressMap))
	require.NoError(t, err)

	want := map[string]Entry{
		"FEB":              {Address: 0x1000, Permission: "", Mask: 0xFFFFFFFF},
		"FEB.CTRL":         {Address: 0x1000, Permission: "rw", Mask: 0xFFFFFFFF},
		"FEB.CTRL.ENABLE":  {Address: 0x1000, Permission: "rw", Mask: 0x00000001},
		"FEB.CTRL.DAC":     {Address: 0x1000, Permission: "rw", Mask: 0xFFFF0000},
		"FEB.STAT":         {Address: 0x1004, Permission: "r", Mask: 0xFFFFFFFF},
		"FEB.STAT.VERSION": {Address: 0x1004, Permission: "r", Mask: 0x000000FF},
	}
	assert.Equal(t, want, entries)
}

// TestParseAddressMapDecimalFields verifies that address and mask
// attributes accept decimal notation too.
func TestParseAddressMapDecimalFields(t *testing.T) {
	doc := `<node id="TOP" address="4096"><node id="REG" address="4" mask="255"/></node>`
	entries, err := ParseAddressMap(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, Entry{Address: 4100, Mask: 0x000000FF}, entries["TOP.REG"])
}

// TestParseAddressMapZeroMask verifies that a zero mask is kept, it is
// the loader's job to warn, not to reject.
func TestParseAddressMapZeroMask(t *testing.T) {
	doc := `<node id="TOP"><node id="HOLE" mask="0x0"/></node>`
	entries, err := ParseAddressMap(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), entries["TOP.HOLE"].Mask)
}

// TestParseAddressMapErrors verifies the malformed document cases.
func TestParseAddressMapErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not xml", doc: "FEB.CTRL 0x1000 rw"},
		{name: "node without id", doc: `<node id="TOP"><node address="0x4"/></node>`},
		{name: "bad address", doc: `<node id="TOP" address="zz"/>`},
		{name: "bad mask", doc: `<node id="TOP" mask="0xgg"/>`},
		{
			name: "duplicate name",
			doc:  `<node id="TOP"><node id="REG"/><node id="REG" address="0x4"/></node>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddressMap(strings.NewReader(tt.doc))
			require.Error(t, err)
			var malformed ErrMalformedMap
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

// TestLoadFile verifies the file-to-store path used by the table load
// command.
func TestLoadFile(t *testing.T) {
	store := newTestStore(t, "amc0")

	path := filepath.Join(t.TempDir(), "feb.xml")
	require.NoError(t, os.WriteFile(path, []byte(testAddressMap), 0644))

	count, err := store.LoadFile("amc0", path)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	entry, err := store.Get("amc0", "FEB.CTRL.DAC")
	require.NoError(t, err)
	assert.Equal(t, Entry{Address: 0x1000, Permission: "rw", Mask: 0xFFFF0000}, entry)
}

// TestLoadFileMissing verifies that a missing map file surfaces as an
// error and leaves the table untouched.
func TestLoadFileMissing(t *testing.T) {
	store := newTestStore(t, "amc0")

	_, err := store.LoadFile("amc0", filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)

	count, err := store.Count("amc0")
	require.NoError(t, err)
	assert.Zero(t, count)
}
