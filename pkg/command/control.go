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

package command

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fe-daq/go-feb/pkg/config"
	"github.com/fe-daq/go-feb/pkg/srv"
)

// StartApiServer runs the register server until SIGINT or SIGTERM.
func StartApiServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := srv.NewApiServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Run()
}
