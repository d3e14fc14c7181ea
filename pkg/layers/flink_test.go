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

// TestBusOpToBytesRoundTrip verifies that a packed request frame
// decodes back into the same header and bus operation.
func TestBusOpToBytesRoundTrip(t *testing.T) {
	op := &BusOp{Read: true, Addr: 0x00001000}
	frame, err := BusOpToBytes(op, 7, FLinkTypeBusRequest)
	require.NoError(t, err)
	require.Len(t, frame, BusFrameLen*4)

	packet := gopacket.NewPacket(frame, FLinkLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	flLayer := packet.Layer(FLinkLayerType)
	require.NotNil(t, flLayer)
	fl := flLayer.(*FLinkLayer)
	assert.Equal(t, FLinkTypeBusRequest, fl.Type)
	assert.Equal(t, uint16(FLinkSync), fl.Sync)
	assert.Equal(t, uint16(7), fl.Seq)
	assert.Equal(t, uint16(BusFrameLen), fl.Len)
	assert.Equal(t, uint16(FLinkHostAddr), fl.Src)
	assert.Equal(t, uint16(FLinkBoardAddr), fl.Dst)

	busLayer := packet.Layer(BusLayerType)
	require.NotNil(t, busLayer)
	bus := busLayer.(*BusLayer)
	assert.True(t, bus.Read)
	assert.Equal(t, uint32(0x00001000), bus.Addr)
	assert.Equal(t, BusStatusOK, bus.Status)
}

// TestBusOpToBytesResponseAddressing verifies that response frames
// carry the board-to-host addressing.
func TestBusOpToBytesResponseAddressing(t *testing.T) {
	op := &BusOp{Read: true, Addr: 0x4, Value: 0xCAFECAFE}
	frame, err := BusOpToBytes(op, 9, FLinkTypeBusResponse)
	require.NoError(t, err)

	fl := &FLinkLayer{}
	require.NoError(t, fl.DecodeFromBytes(frame, gopacket.NilDecodeFeedback))
	assert.Equal(t, FLinkTypeBusResponse, fl.Type)
	assert.Equal(t, uint16(FLinkBoardAddr), fl.Src)
	assert.Equal(t, uint16(FLinkHostAddr), fl.Dst)
}

// TestFLinkDecodeRejects verifies the frame validation: sync word,
// declared length and checksum must all hold.
func TestFLinkDecodeRejects(t *testing.T) {
	op := &BusOp{Read: false, Addr: 0x8, Value: 1}
	good, err := BusOpToBytes(op, 1, FLinkTypeBusRequest)
	require.NoError(t, err)

	corrupt := func(mutate func(frame []byte)) []byte {
		frame := append([]byte(nil), good...)
		mutate(frame)
		return frame
	}

	tests := []struct {
		name  string
		frame []byte
	}{
		{
			name:  "short frame",
			frame: good[:FLinkHeaderSize+FLinkTailSize-1],
		},
		{
			name:  "bad sync",
			frame: corrupt(func(f []byte) { f[2] = 0x00 }),
		},
		{
			name:  "length does not match frame",
			frame: corrupt(func(f []byte) { f[6] = BusFrameLen + 1 }),
		},
		{
			name:  "payload bit flip breaks crc",
			frame: corrupt(func(f []byte) { f[FLinkHeaderSize] ^= 0x01 }),
		},
		{
			name:  "crc word bit flip",
			frame: corrupt(func(f []byte) { f[len(f)-1] ^= 0x01 }),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := &FLinkLayer{}
			assert.Error(t, fl.DecodeFromBytes(tt.frame, gopacket.NilDecodeFeedback))
		})
	}
}

// TestFLinkUnknownTypeDecoder verifies that a frame with an
// unregistered type still decodes at the FLink level but yields no
// next layer.
func TestFLinkUnknownTypeDecoder(t *testing.T) {
	meta := FLinkMetadata[0x7777]
	assert.Equal(t, "UnknownFLinkType", meta.Name)
	err := FLinkType(0x7777).Decode(nil, nil)
	assert.Error(t, err)
}
