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
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/normalize"
)

// app holds the state shared by all commands.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	configPath string
	debug      bool

	cfg Config
	log *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chardiff",
		Short:         "chardiff - compare texts character by character",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "the path to the config file (defaults to $XDG_CONFIG_HOME/chardiff/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log debug messages to stderr")

	root.AddCommand(
		newDiffCmd(a),
		newNormalizeCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return root
}

// init loads the configuration and sets up logging.
func (a *app) init() error {
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			a.log.Debug("no config directory", "err", err)
			a.cfg = defaultConfig()
			return nil
		}
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Debug("config loaded", "path", path, "config", cfg)
	return nil
}

func (a *app) unit() config.Unit {
	if a.cfg.Graphemes {
		return config.UnitGrapheme
	}
	return config.UnitRune
}

func (a *app) diffOptions() []chardiff.Option {
	var opts []chardiff.Option
	if a.cfg.Graphemes {
		opts = append(opts, chardiff.Graphemes())
	}
	if a.cfg.PreferRemoved {
		opts = append(opts, chardiff.PreferRemoved())
	}
	return opts
}

func (a *app) normalizer() (normalize.Normalizer, error) {
	if len(a.cfg.Rules) == 0 {
		return normalize.Default(), nil
	}
	n, err := normalize.New(a.cfg.Rules...)
	if err != nil {
		return nil, errors.Wrap(err, "creating normalizer")
	}
	return n, nil
}

// readInput reads a file, or stdin if path is "-".
func (a *app) readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}
