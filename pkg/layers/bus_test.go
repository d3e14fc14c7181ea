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

package layers

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBusOpSerializeDecode verifies the 3-word payload format: flags
// word with read bit and status byte, address word, value word.
func TestBusOpSerializeDecode(t *testing.T) {
	tests := []struct {
		name string
		op   BusOp
	}{
		{name: "read request", op: BusOp{Read: true, Addr: 0x1000}},
		{name: "write request", op: BusOp{Read: false, Addr: 0x1004, Value: 0xABCD1234}},
		{name: "fault response", op: BusOp{Read: true, Status: BusStatusFault, Addr: 0x1000}},
		{name: "read response", op: BusOp{Read: true, Addr: 0xFFFFFFFC, Value: 0xDEADBEEF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &BusLayer{BusOp: &tt.op}
			buf := make([]byte, BusOpSize)
			src.Serialize(buf)

			dst := &BusLayer{}
			require.NoError(t, dst.DecodeFromBytes(buf, gopacket.NilDecodeFeedback))
			assert.Equal(t, tt.op, *dst.BusOp)
		})
	}
}

// TestBusOpDecodeShort verifies that a truncated payload is rejected.
func TestBusOpDecodeShort(t *testing.T) {
	dst := &BusLayer{}
	err := dst.DecodeFromBytes(make([]byte, BusOpSize-1), gopacket.NilDecodeFeedback)
	assert.Error(t, err)
}

// TestBusReadFlagPlacement pins the wire format: the read bit is the
// top bit of the flags word, the status the low byte.
func TestBusReadFlagPlacement(t *testing.T) {
	src := &BusLayer{BusOp: &BusOp{Read: true, Status: BusStatusFault, Addr: 1, Value: 2}}
	buf := make([]byte, BusOpSize)
	src.Serialize(buf)

	assert.Equal(t, byte(0x80), buf[3])
	assert.Equal(t, byte(BusStatusFault), buf[0])
}
