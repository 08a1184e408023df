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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"znkr.io/chardiff"
	"znkr.io/chardiff/render"
)

type jsonOutput struct {
	Parts chardiff.Script `json:"parts"`
	Stats chardiff.Stats  `json:"stats"`
}

// writeScript writes s to w in the configured format.
func (a *app) writeScript(w io.Writer, s chardiff.Script) error {
	var err error
	switch a.cfg.Format {
	case "plain":
		err = render.Plain(w, s)
		if err == nil {
			err = endLine(w, s)
		}
	case "ansi":
		err = render.ANSI(w, s, a.colorOptions()...)
		if err == nil {
			err = endLine(w, s)
		}
	case "markers":
		err = render.Markers(w, s)
	case "html":
		_, err = fmt.Fprintln(w, render.HTML(s))
	case "delta":
		_, err = fmt.Fprintln(w, render.Delta(s))
	case "json":
		if s == nil {
			s = chardiff.Script{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(jsonOutput{Parts: s, Stats: s.Stats()})
	default:
		return errors.Errorf("unknown format %q", a.cfg.Format)
	}
	return errors.Wrap(err, "writing output")
}

// endLine terminates the output with a newline unless the text already ends with one.
func endLine(w io.Writer, s chardiff.Script) error {
	if n := len(s); n > 0 && strings.HasSuffix(s[n-1].Text, "\n") {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (a *app) colorOptions() []render.Option {
	switch a.cfg.Color {
	case "always":
		return []render.Option{render.Color(true)}
	case "never":
		return []render.Option{render.Color(false)}
	default:
		return nil
	}
}

// writeStats writes a summary of the changes in s.
func writeStats(w io.Writer, s chardiff.Script) error {
	st := s.Stats()
	if !st.Changed() {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	_, err := fmt.Fprintln(w, st)
	return err
}
