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

// Package layers defines the FLink frame format spoken between the
// host and the front-end carrier boards, as gopacket layers.
package layers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/fe-daq/go-feb/pkg/log"
)

const (
	FLinkHostAddr  = 1
	FLinkBoardAddr = 0xfeb0
)

func init() {
	initUnknownFLinkTypes()
	initActualFLinkTypes()
}

const (
	// FLinkLayerNum identifies the layer
	FLinkLayerNum = 2014
	// FLinkEndpointNum
	FLinkEndpointNum = 2020
	// FLinkSync is a magic number that appears in the beginning of each FLink frame
	FLinkSync = 0x4642
	// FLinkHeaderSize is the FLink header size in bytes
	FLinkHeaderSize = 12
	// FLinkTailSize is the size of the trailing CRC word in bytes
	FLinkTailSize = 4
	// FLinkMaxFrameSize is the max size of an FLink frame including header and CRC
	FLinkMaxFrameSize = 1400
)

type FLinkType uint16

const (
	FLinkTypeBusRequest  FLinkType = 0x0201
	FLinkTypeBusResponse FLinkType = 0x0202
)

type errorDecoderForFLinkType int

func (e *errorDecoderForFLinkType) Decode(data []byte, p gopacket.PacketBuilder) error {
	return e
}

func (e *errorDecoderForFLinkType) Error() string {
	return fmt.Sprintf("Unable to decode FLink type %d", int(*e))
}

var errorDecodersForFLinkType [65536]errorDecoderForFLinkType
var FLinkMetadata [65536]layers.EnumMetadata

func initUnknownFLinkTypes() {
	for i := 0; i < 65536; i++ {
		errorDecodersForFLinkType[i] = errorDecoderForFLinkType(i)
		FLinkMetadata[i] = layers.EnumMetadata{
			DecodeWith: &errorDecodersForFLinkType[i],
			Name:       "UnknownFLinkType",
		}
	}
}

// Both request and response frames carry a bus operation so the host
// client and the board-side responder decode with the same catalog.
func initActualFLinkTypes() {
	FLinkMetadata[FLinkTypeBusRequest] = layers.EnumMetadata{DecodeWith: gopacket.DecodeFunc(DecodeBusLayer), Name: "Bus", LayerType: BusLayerType}
	FLinkMetadata[FLinkTypeBusResponse] = layers.EnumMetadata{DecodeWith: gopacket.DecodeFunc(DecodeBusLayer), Name: "Bus", LayerType: BusLayerType}
}

// LayerType returns FLinkMetadata.LayerType
func (t FLinkType) LayerType() gopacket.LayerType {
	return FLinkMetadata[t].LayerType
}

// Decode calls FLinkMetadata.DecodeWith's decoder
func (t FLinkType) Decode(data []byte, p gopacket.PacketBuilder) error {
	return FLinkMetadata[t].DecodeWith.Decode(data, p)
}

// String returns FLinkMetadata.Name
func (t FLinkType) String() string {
	return FLinkMetadata[t].Name
}

type FLinkHeader struct {
	Type FLinkType
	Sync uint16
	Seq  uint16
	Len  uint16 // length of the FLink frame including header, payload and CRC in 4-byte words NOT in bytes
	Src  uint16
	Dst  uint16
}

type FLinkLayer struct {
	layers.BaseLayer
	FLinkHeader
	Crc uint32
}

var FLinkLayerType = gopacket.RegisterLayerType(FLinkLayerNum,
	gopacket.LayerTypeMetadata{Name: "FLinkLayerType", Decoder: gopacket.DecodeFunc(decodeFLinkLayer)})

func (fl *FLinkLayer) LayerType() gopacket.LayerType {
	return FLinkLayerType
}

// SerializeHeader serializes only the FLink header (not the tail) to a
// buffer. The CRC field depends on the contents of the whole frame and
// is calculated in upper layers from the serialized header.
func (fl *FLinkLayer) SerializeHeader(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(fl.Type))
	binary.LittleEndian.PutUint16(buf[2:4], fl.Sync)
	binary.LittleEndian.PutUint16(buf[4:6], fl.Seq)
	binary.LittleEndian.PutUint16(buf[6:8], fl.Len)
	binary.LittleEndian.PutUint16(buf[8:10], fl.Src)
	binary.LittleEndian.PutUint16(buf[10:12], fl.Dst)
}

// SerializeTo serializes the layer into bytes and writes the bytes to the SerializeBuffer
func (fl *FLinkLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	headerBytes, err := b.PrependBytes(FLinkHeaderSize)
	if err != nil {
		return err
	}
	fl.SerializeHeader(headerBytes)

	tailBytes, err := b.AppendBytes(FLinkTailSize)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(tailBytes[0:4], fl.Crc)
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as an FLink frame.
// The trailing word of every FLink frame is the crc32 sum of header
// and payload, frames that fail the check are rejected here.
func (fl *FLinkLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < FLinkHeaderSize+FLinkTailSize {
		df.SetTruncated()
		return errors.New("FLink frame too short")
	}

	if binary.LittleEndian.Uint16(data[2:4]) != FLinkSync {
		log.Debug("FLink sync is invalid")
		return fmt.Errorf("Wrong FLink sync. Must be 0x%04x", FLinkSync)
	}

	fl.BaseLayer = layers.BaseLayer{
		Contents: data[0:FLinkHeaderSize],
		Payload:  data[FLinkHeaderSize : len(data)-FLinkTailSize],
	}

	fl.Type = FLinkType(binary.LittleEndian.Uint16(data[0:2]))
	fl.Sync = binary.LittleEndian.Uint16(data[2:4])
	fl.Seq = binary.LittleEndian.Uint16(data[4:6])
	fl.Len = binary.LittleEndian.Uint16(data[6:8])
	fl.Src = binary.LittleEndian.Uint16(data[8:10])
	fl.Dst = binary.LittleEndian.Uint16(data[10:12])
	fl.Crc = binary.LittleEndian.Uint32(data[len(data)-FLinkTailSize:])

	if int(fl.Len)*4 != len(data) {
		return fmt.Errorf("Wrong FLink frame length. Header says %d words, frame has %d bytes", fl.Len, len(data))
	}

	if crc := crc32.ChecksumIEEE(data[:len(data)-FLinkTailSize]); crc != fl.Crc {
		return fmt.Errorf("Wrong FLink CRC. Computed 0x%08x, frame carries 0x%08x", crc, fl.Crc)
	}

	return nil
}

func (fl *FLinkLayer) NextLayerType() gopacket.LayerType {
	return fl.Type.LayerType()
}

func decodeFLinkLayer(data []byte, p gopacket.PacketBuilder) error {
	fl := &FLinkLayer{}
	err := fl.DecodeFromBytes(data, p)
	if err != nil {
		log.Error("Error while decoding flink layer: %s", err)
		return err
	}
	p.AddLayer(fl)
	return p.NextDecoder(fl.NextLayerType())
}
