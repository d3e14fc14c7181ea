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
	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/pkg/command"
	"github.com/fe-daq/go-feb/pkg/config"
)

func NewWriteCommand() *cobra.Command {
	var board, name, value string
	var raw bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a register by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if raw {
				return apiClient.RegWriteRaw(board, name, value)
			}
			return apiClient.RegWrite(board, name, value)
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, cfg.DefaultBoard(), "Board name")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Register value (hexadecimal)")
	cmd.MarkFlagRequired(ValueOptionName)
	cmd.Flags().BoolVar(&raw, RawOptionName, false, "Overwrite the full word, do not read-modify-write")

	return cmd
}
