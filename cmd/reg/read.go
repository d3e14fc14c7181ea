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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/pkg/command"
	"github.com/fe-daq/go-feb/pkg/config"
)

func NewReadCommand() *cobra.Command {
	var board, name string
	var raw, info bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a register by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if info {
				regInfo, err := apiClient.RegInfo(board, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Register: %s address: %s mask: %s permission: %s width: %d\n",
					regInfo.Name, regInfo.Address, regInfo.Mask, regInfo.Permission, regInfo.Width)
				return nil
			}
			read := apiClient.RegRead
			if raw {
				read = apiClient.RegReadRaw
			}
			value, err := read(board, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Register state: %s = %s\n", name, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, cfg.DefaultBoard(), "Board name")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().BoolVar(&raw, RawOptionName, false, "Read the full word, do not apply the mask")
	cmd.Flags().BoolVar(&info, InfoOptionName, false, "Resolve the register without touching the hardware")

	return cmd
}
