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
	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/pkg/command"
	"github.com/fe-daq/go-feb/pkg/config"
)

func NewDumpCommand() *cobra.Command {
	var board string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump a board's address table, one register per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.DumpTable(cfg, board, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, cfg.DefaultBoard(), "Board name")

	return cmd
}
