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
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// BusLayerNum identifies the layer
	BusLayerNum = 2015
	// BusOpSize is the size of a serialized bus operation in bytes:
	// one word of flags/status, the address word and the value word
	BusOpSize = 12
	// BusFrameLen is the length of a complete bus frame in 4-byte
	// words: FLink header (3) + bus op (3) + CRC (1)
	BusFrameLen = 7
)

// Bus operation status codes carried in the low byte of the first
// payload word of a response.
const (
	BusStatusOK uint32 = iota
	BusStatusFault
)

const busReadFlag = 0x80000000

// BusOp is a single register transaction on the board bus. A request
// carries the address and, for writes, the value. A response echoes
// the address and carries the read data and the completion status.
type BusOp struct {
	Read   bool
	Status uint32 // low byte of the flags word, BusStatusOK on success
	Addr   uint32
	Value  uint32 // ignored for read requests
}

type BusLayer struct {
	layers.BaseLayer
	*BusOp
}

var BusLayerType = gopacket.RegisterLayerType(BusLayerNum,
	gopacket.LayerTypeMetadata{Name: "BusLayerType", Decoder: gopacket.DecodeFunc(DecodeBusLayer)})

// LayerType returns the type of the Bus layer in the layer catalog
func (bus *BusLayer) LayerType() gopacket.LayerType {
	return BusLayerType
}

// Serialize serializes the bus operation to a buffer. The FLink CRC
// depends on the serialized payload, so upper layers call this
// directly when computing the frame checksum.
func (bus *BusLayer) Serialize(buf []byte) {
	flags := bus.Status & 0xff
	if bus.Read {
		flags |= busReadFlag
	}
	binary.LittleEndian.PutUint32(buf[0:4], flags)
	binary.LittleEndian.PutUint32(buf[4:8], bus.Addr)
	binary.LittleEndian.PutUint32(buf[8:12], bus.Value)
}

// SerializeTo serializes the bus operation into bytes and writes the bytes to the SerializeBuffer
func (bus *BusLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(BusOpSize)
	if err != nil {
		return err
	}
	bus.Serialize(bytes)
	return nil
}

func (bus *BusLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < BusOpSize {
		df.SetTruncated()
		return errors.New("Bus operation too short")
	}
	bus.BaseLayer = layers.BaseLayer{
		Contents: data[:BusOpSize],
		Payload:  []byte{},
	}
	if bus.BusOp == nil {
		bus.BusOp = &BusOp{}
	}
	flags := binary.LittleEndian.Uint32(data[0:4])
	bus.Read = flags&busReadFlag != 0
	bus.Status = flags & 0xff
	bus.Addr = binary.LittleEndian.Uint32(data[4:8])
	bus.Value = binary.LittleEndian.Uint32(data[8:12])
	return nil
}

func DecodeBusLayer(data []byte, p gopacket.PacketBuilder) error {
	bus := &BusLayer{}
	err := bus.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(bus)
	return nil
}

// BusOpToBytes packs a bus operation into a complete FLink frame with
// the given frame type and sequence number.
func BusOpToBytes(op *BusOp, seq uint16, frameType FLinkType) ([]byte, error) {
	fl := &FLinkLayer{}
	fl.Type = frameType
	fl.Sync = FLinkSync
	fl.Len = BusFrameLen
	fl.Seq = seq
	if frameType == FLinkTypeBusResponse {
		fl.Src = FLinkBoardAddr
		fl.Dst = FLinkHostAddr
	} else {
		fl.Src = FLinkHostAddr
		fl.Dst = FLinkBoardAddr
	}

	flHeaderBytes := make([]byte, FLinkHeaderSize)
	fl.SerializeHeader(flHeaderBytes)

	bus := &BusLayer{}
	bus.BusOp = op
	busBytes := make([]byte, BusOpSize)
	bus.Serialize(busBytes)

	fl.Crc = crc32.ChecksumIEEE(append(flHeaderBytes, busBytes...))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	err := gopacket.SerializeLayers(buf, opts, fl, bus)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
