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

package table

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/pkg/command"
	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/reg"
)

func NewInfoCommand() *cobra.Command {
	var board, name string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a board's address table size or resolve one register",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if name == "" {
				count, err := command.CountTable(cfg, board)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Board %s: %d registers\n", board, count)
				return nil
			}
			entry, err := command.DescribeRegister(cfg, board, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Name:       %s\n", name)
			fmt.Fprintf(out, "Address:    0x%08x\n", entry.Address)
			fmt.Fprintf(out, "Mask:       0x%08x\n", entry.Mask)
			fmt.Fprintf(out, "Permission: %s\n", entry.Permission)
			fmt.Fprintf(out, "Width:      %d\n", reg.NumNonzeroBits(entry.Mask))
			return nil
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, cfg.DefaultBoard(), "Board name")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name to resolve")

	return cmd
}
