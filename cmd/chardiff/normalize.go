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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/guard"
	"znkr.io/chardiff/normalize"
)

var normalizeExample = `
 * Normalize a file and show what changed
 chardiff normalize --diff README.md

 * Only fix the spacing between CJK and Latin characters
 echo '中文English' | chardiff normalize --rule cjk-latin-spacing
 `

type normalizeFlags struct {
	diff      bool
	listRules bool
}

func newNormalizeCmd(a *app) *cobra.Command {
	var f normalizeFlags
	cmd := &cobra.Command{
		Use:     "normalize [FILE]",
		Short:   "Normalize a file or stdin and print the result",
		Example: normalizeExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, &a.cfg); err != nil {
				return err
			}
			if f.listRules {
				return a.listRules()
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.runNormalize(f, path)
		},
	}
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print the changes made by the normalizer to stderr")
	cmd.Flags().BoolVar(&f.listRules, "list-rules", false, "list the available rules and exit")
	cmd.Flags().StringSlice("rule", nil, "rules to apply in the given order (defaults to all rules)")
	addEngineFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func (a *app) listRules() error {
	for _, r := range normalize.Rules() {
		if _, err := fmt.Fprintln(a.stdout, r.Name); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}

func (a *app) runNormalize(f normalizeFlags, path string) error {
	n, err := a.normalizer()
	if err != nil {
		return err
	}
	input, err := a.readInput(path)
	if err != nil {
		return err
	}
	output := n.Normalize(input)
	if _, err := io.WriteString(a.stdout, output); err != nil {
		return errors.Wrap(err, "writing output")
	}
	if !f.diff {
		return nil
	}
	return a.showChanges(a.stderr, input, output)
}

// showChanges writes the differences between input and output followed by a summary.
func (a *app) showChanges(w io.Writer, input, output string) error {
	if err := guard.Check(input, output, a.unit(), a.cfg.MaxUnits); err != nil {
		return errors.Wrap(err, "comparing")
	}
	s := chardiff.Diff(input, output, a.diffOptions()...)
	if err := a.writeScript(w, s); err != nil {
		return err
	}
	return writeStats(w, s)
}
