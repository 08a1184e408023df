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

// Package render presents a [chardiff.Script] to humans and other programs.
package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/chardiff"
)

const (
	plainRemovedStart = "[-"
	plainRemovedEnd   = "-]"
	plainAddedStart   = "{+"
	plainAddedEnd     = "+}"
)

// Plain writes s in the style of a word diff: removed text is enclosed in [-...-], added text in
// {+...+}, unchanged text is written as is.
func Plain(w io.Writer, s chardiff.Script) error {
	bw := bufio.NewWriter(w)
	for _, p := range s {
		switch p.Op {
		case chardiff.Unchanged:
			bw.WriteString(p.Text)
		case chardiff.Removed:
			bw.WriteString(plainRemovedStart)
			bw.WriteString(p.Text)
			bw.WriteString(plainRemovedEnd)
		case chardiff.Added:
			bw.WriteString(plainAddedStart)
			bw.WriteString(p.Text)
			bw.WriteString(plainAddedEnd)
		default:
			panic("never reached")
		}
	}
	return bw.Flush()
}

// ANSI writes s using terminal colors: added text is green and underlined, removed text is red
// and crossed out.
//
// Whether colors are used is determined by [color.NoColor] unless [Color] is passed. Without
// colors, ANSI falls back to [Plain].
func ANSI(w io.Writer, s chardiff.Script, opts ...Option) error {
	st := newSettings(opts)
	if !st.useColor() {
		return Plain(w, s)
	}
	added, removed := color.New(st.added...), color.New(st.removed...)
	added.EnableColor()
	removed.EnableColor()

	bw := bufio.NewWriter(w)
	for _, p := range s {
		switch p.Op {
		case chardiff.Unchanged:
			bw.WriteString(p.Text)
		case chardiff.Removed:
			bw.WriteString(removed.Sprint(p.Text))
		case chardiff.Added:
			bw.WriteString(added.Sprint(p.Text))
		default:
			panic("never reached")
		}
	}
	return bw.Flush()
}

func toDMP(s chardiff.Script) []diffmatchpatch.Diff {
	diffs := make([]diffmatchpatch.Diff, len(s))
	for i, p := range s {
		var typ diffmatchpatch.Operation
		switch p.Op {
		case chardiff.Unchanged:
			typ = diffmatchpatch.DiffEqual
		case chardiff.Removed:
			typ = diffmatchpatch.DiffDelete
		case chardiff.Added:
			typ = diffmatchpatch.DiffInsert
		default:
			panic("never reached")
		}
		diffs[i] = diffmatchpatch.Diff{Type: typ, Text: p.Text}
	}
	return diffs
}

// HTML returns s as an HTML fragment: added text in <ins>, removed text in <del>, and unchanged
// text in <span> elements. Newlines are shown as a pilcrow followed by <br>.
func HTML(s chardiff.Script) string {
	return diffmatchpatch.New().DiffPrettyHtml(toDMP(s))
}

// Delta encodes s in the compact delta format of diff-match-patch, e.g., "=2\t-1\t+d". Together
// with the input, the delta is sufficient to reconstruct the output, see [ApplyDelta].
func Delta(s chardiff.Script) string {
	return diffmatchpatch.New().DiffToDelta(toDMP(s))
}

// ApplyDelta reconstructs the output of a script from its input and the delta returned by
// [Delta].
func ApplyDelta(input, delta string) (string, error) {
	dmp := diffmatchpatch.New()
	diffs, err := dmp.DiffFromDelta(input, delta)
	if err != nil {
		return "", err
	}
	return dmp.DiffText2(diffs), nil
}

const ellipsis = "…"

// Elide shortens long unchanged parts of s so that at most context characters are kept next to
// every change. Characters are counted as grapheme clusters, so a cut never separates a base
// character from its combining marks. Removed characters are replaced by a single "…". Changed
// parts are never shortened. A negative context returns s unchanged.
//
// The result is meant for display, it no longer reconstructs the original texts.
func Elide(s chardiff.Script, context int) chardiff.Script {
	if context < 0 || len(s) < 2 {
		return s
	}
	out := make(chardiff.Script, len(s))
	for i, p := range s {
		out[i] = p
		if p.Op != chardiff.Unchanged {
			continue
		}
		cs := clusters(p.Text)
		head := func() string { return strings.Join(cs[:context], "") }
		tail := func() string { return strings.Join(cs[len(cs)-context:], "") }
		first, last := i == 0, i == len(s)-1
		switch {
		case first && len(cs) > context+1:
			out[i].Text = ellipsis + tail()
		case last && len(cs) > context+1:
			out[i].Text = head() + ellipsis
		case !first && !last && len(cs) > 2*context+1:
			out[i].Text = head() + ellipsis + tail()
		}
	}
	return out
}

// clusters splits s into grapheme clusters.
func clusters(s string) []string {
	var cs []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		cs = append(cs, iter.Value())
	}
	return cs
}

// String is a convenience function that returns the [Plain] rendering of s.
func String(s chardiff.Script) string {
	var sb strings.Builder
	Plain(&sb, s) // writing to a strings.Builder never fails
	return sb.String()
}
