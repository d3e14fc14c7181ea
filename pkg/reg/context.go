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

// Package reg implements named register access for the front-end
// boards: names resolve to (address, permission, mask) through a
// board's address table, reads and writes honor the mask, and every
// operation reports through a response sink.
package reg

import (
	"github.com/fe-daq/go-feb/pkg/mem"
)

// Table is a read-only view of one board's address table for the
// duration of a single operation. Get returns nil when the register
// name is unknown. addrtab.View implements it inside a store
// transaction.
type Table interface {
	Get(name string) []byte
	Name() string
}

// Context carries what one register operation needs: the table view it
// resolves against, the bus it talks through and the sink it reports
// to. The table view is borrowed from the enclosing store transaction,
// so a Context is built per operation and must not outlive the call
// chain that created it. Nothing here is safe for concurrent use, the
// dispatch layer serializes operations.
type Context struct {
	Table Table
	Bus   mem.Bus
	Rsp   *Response
}

func NewContext(table Table, bus mem.Bus, rsp *Response) *Context {
	return &Context{
		Table: table,
		Bus:   bus,
		Rsp:   rsp,
	}
}
