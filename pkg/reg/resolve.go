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

	"github.com/fe-daq/go-feb/pkg/addrtab"
)

// getEntry resolves a register name against the table without touching
// the hardware. A missing name and an undecodable entry are distinct
// failures, both land on the sink and abort the operation.
func getEntry(ctx *Context, name string) (addrtab.Entry, error) {
	raw := ctx.Table.Get(name)
	if raw == nil {
		err := addrtab.ErrNotFound{Table: ctx.Table.Name(), Name: name}
		ctx.Rsp.SetError(err.Error())
		return addrtab.Entry{}, err
	}
	entry, err := addrtab.DecodeEntry(raw)
	if err != nil {
		ctx.Rsp.SetError(err.Error())
		return addrtab.Entry{}, err
	}
	return entry, nil
}

// GetAddress returns the physical address a register name resolves to.
func GetAddress(ctx *Context, name string) (uint32, error) {
	entry, err := getEntry(ctx, name)
	if err != nil {
		return 0, err
	}
	return entry.Address, nil
}

// GetMask returns the bit mask of a register. Exposed together with
// GetAddress so scan code can compute address ranges without issuing
// any access.
func GetMask(ctx *Context, name string) (uint32, error) {
	entry, err := getEntry(ctx, name)
	if err != nil {
		return 0, err
	}
	return entry.Mask, nil
}

// NumNonzeroBits counts the set bits of a word, the bit width of the
// field a register mask selects.
func NumNonzeroBits(value uint32) uint32 {
	return uint32(bits.OnesCount32(value))
}
