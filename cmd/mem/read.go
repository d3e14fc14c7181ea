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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/pkg/command"
	"github.com/fe-daq/go-feb/pkg/config"
)

func NewReadCommand() *cobra.Command {
	var board, addr string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read one word at a bare address",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			value, err := apiClient.MemRead(board, addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Memory state: %s = %s\n", addr, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, cfg.DefaultBoard(), "Board name")
	cmd.Flags().StringVar(&addr, AddrOptionName, "", "Word address (hexadecimal)")
	cmd.MarkFlagRequired(AddrOptionName)

	return cmd
}
