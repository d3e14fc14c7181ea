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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fe-daq/go-feb/cmd/completion"
	"github.com/fe-daq/go-feb/cmd/config"
	"github.com/fe-daq/go-feb/cmd/mem"
	"github.com/fe-daq/go-feb/cmd/reg"
	"github.com/fe-daq/go-feb/cmd/serve"
	"github.com/fe-daq/go-feb/cmd/table"
	pkgconfig "github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-feb",
		Short: "Tool to work with FEB front-end boards",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand())
	cmd.AddCommand(table.NewCommand())
	cmd.AddCommand(reg.NewCommand())
	cmd.AddCommand(mem.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
