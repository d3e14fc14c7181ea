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
	"github.com/spf13/cobra"
)

const (
	BoardOptionName = "board"
	AddrOptionName  = "addr"
	ValueOptionName = "value"
)

// NewCommand creates a cobra command object for bare-address word access
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mem read|write",
		Short: "Read/write single words by bare address",
	}
	cmd.AddCommand(NewReadCommand())
	cmd.AddCommand(NewWriteCommand())
	return cmd
}
