// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"znkr.io/chardiff/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, &a.cfg); err != nil {
				return err
			}
			srv, err := a.newServer()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, a.cfg.Addr)
		},
	}
	cmd.Flags().String("addr", "", "the address to listen on (defaults to localhost:8080)")
	cmd.Flags().StringSlice("rule", nil, "normalizer rules to apply in the given order (defaults to all rules)")
	cmd.Flags().Int("max-units", 0, "maximum combined number of characters of both texts, 0 disables the limit")
	return cmd
}

func (a *app) newServer() (*server.Server, error) {
	n, err := a.normalizer()
	if err != nil {
		return nil, err
	}
	maxUnits := a.cfg.MaxUnits
	if maxUnits == 0 {
		maxUnits = -1 // unlimited
	}
	return server.New(server.Options{
		Normalizer: n,
		MaxUnits:   maxUnits,
		RateLimit:  a.cfg.RateLimit,
		RateBurst:  a.cfg.RateBurst,
		Logger:     a.log,
	})
}
