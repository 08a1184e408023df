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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/guard"
	"znkr.io/chardiff/render"
)

var diffExample = `
 * Compare two files
 chardiff diff old.txt new.txt

 * Compare two strings and show where the changes are
 chardiff diff --text --format markers '中文English' '中文 English'
 `

type diffFlags struct {
	text    bool
	context int
	stats   bool
}

func newDiffCmd(a *app) *cobra.Command {
	var f diffFlags
	cmd := &cobra.Command{
		Use:     "diff OLD NEW",
		Short:   "Compare two files or strings",
		Example: diffExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, &a.cfg); err != nil {
				return err
			}
			return a.runDiff(f, args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&f.text, "text", false, "treat the arguments as texts instead of file names")
	cmd.Flags().IntVar(&f.context, "context", -1, "number of unchanged characters to show around changes, negative shows all")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print the number of added and removed characters to stderr")
	addEngineFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func (a *app) runDiff(f diffFlags, old, new string) error {
	input, output := old, new
	if !f.text {
		var err error
		if input, err = a.readInput(old); err != nil {
			return err
		}
		if output, err = a.readInput(new); err != nil {
			return err
		}
	}

	if err := guard.Check(input, output, a.unit(), a.cfg.MaxUnits); err != nil {
		return errors.Wrap(err, "comparing")
	}
	s := chardiff.Diff(input, output, a.diffOptions()...)
	a.log.Debug("diff", "parts", len(s), "stats", s.Stats())

	if f.context >= 0 {
		s = render.Elide(s, f.context)
	}
	if err := a.writeScript(a.stdout, s); err != nil {
		return err
	}
	if f.stats {
		return writeStats(a.stderr, s)
	}
	return nil
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("graphemes", false, "compare user-perceived characters (grapheme clusters) instead of code points")
	cmd.Flags().Bool("prefer-removed", false, "order removals after additions when both are possible")
	cmd.Flags().Int("max-units", 0, "maximum combined number of characters of both texts, 0 disables the limit")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format: plain, ansi, html, markers, delta or json")
	cmd.Flags().String("color", "", "use colors with the ansi format: auto, always or never")
}

// applyFlags overrides the configuration with all flags that are set on the command line.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = errors.Wrapf(apply(), "flag --%s", name)
		}
	}
	set("graphemes", func() (e error) { cfg.Graphemes, e = flags.GetBool("graphemes"); return })
	set("prefer-removed", func() (e error) { cfg.PreferRemoved, e = flags.GetBool("prefer-removed"); return })
	set("max-units", func() (e error) { cfg.MaxUnits, e = flags.GetInt("max-units"); return })
	set("format", func() (e error) { cfg.Format, e = flags.GetString("format"); return })
	set("color", func() (e error) { cfg.Color, e = flags.GetString("color"); return })
	set("addr", func() (e error) { cfg.Addr, e = flags.GetString("addr"); return })
	set("rule", func() (e error) { cfg.Rules, e = flags.GetStringSlice("rule"); return })
	if err != nil {
		return err
	}
	return cfg.Validate()
}
