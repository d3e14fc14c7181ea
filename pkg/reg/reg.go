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
	"math/bits"
)

const (
	// BadRead is what ReadReg returns when the register is not
	// accessible. Callers polling best-effort compare against it,
	// everyone else checks the response sink.
	BadRead uint32 = 0xDEADDEAD
	// FullMask selects the whole 32-bit word.
	FullMask uint32 = 0xFFFFFFFF
)

// ApplyMask keeps the bits of data selected by mask. Pure bit
// operation, bits stay in place, idempotent.
func ApplyMask(data, mask uint32) uint32 {
	return data & mask
}

// ReadRawReg resolves a register name and reads the full word at its
// address, mask not applied.
func ReadRawReg(ctx *Context, name string) (uint32, error) {
	addr, err := GetAddress(ctx, name)
	if err != nil {
		return 0, err
	}
	return ReadRawAddress(ctx.Bus, addr, ctx.Rsp)
}

// WriteRawReg resolves a register name and overwrites the full word at
// its address, mask not applied. Only for callers that intend to set
// every bit of the word.
func WriteRawReg(ctx *Context, name string, value uint32) error {
	addr, err := GetAddress(ctx, name)
	if err != nil {
		return err
	}
	return WriteRawAddress(ctx.Bus, addr, value, ctx.Rsp)
}

// ReadReg reads a register by name and applies its mask. On any
// failure, resolution or bus, it returns BadRead and leaves the reason
// on the sink. The sentinel is the documented contract of the
// slow-control surface, polling callers depend on it.
func ReadReg(ctx *Context, name string) uint32 {
	entry, err := getEntry(ctx, name)
	if err != nil {
		return BadRead
	}
	value, err := ReadRawAddress(ctx.Bus, entry.Address, ctx.Rsp)
	if err != nil {
		return BadRead
	}
	return ApplyMask(value, entry.Mask)
}

// WriteReg writes a register by name honoring its mask. A full-mask
// register is written in exactly one transaction. A partial register
// is read-modify-written: the current word is read, the masked field
// is cleared, value is shifted into the field and the combined word is
// written back, so bits outside the mask survive. The read and the
// write are separate transactions with no lock between them, a
// concurrent writer of the same word is an accepted race that the
// dispatch layer avoids by serializing operations.
func WriteReg(ctx *Context, name string, value uint32) error {
	entry, err := getEntry(ctx, name)
	if err != nil {
		return err
	}
	if entry.Mask == FullMask {
		return WriteRawAddress(ctx.Bus, entry.Address, value, ctx.Rsp)
	}
	current, err := ReadRawAddress(ctx.Bus, entry.Address, ctx.Rsp)
	if err != nil {
		return err
	}
	shift := uint32(bits.TrailingZeros32(entry.Mask))
	updated := (current &^ entry.Mask) | ((value << shift) & entry.Mask)
	return WriteRawAddress(ctx.Bus, entry.Address, updated, ctx.Rsp)
}
