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

package chardiff

import (
	"fmt"
	"strings"

	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/internal/edits"
	"znkr.io/chardiff/internal/lcs"
	"znkr.io/chardiff/internal/units"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Unchanged Op = iota // Text present in both input and output
	Removed             // Text from the input that is missing in the output
	Added               // Text from the output that is missing in the input
)

// MarshalText implements [encoding.TextMarshaler].
func (op Op) MarshalText() ([]byte, error) {
	switch op {
	case Unchanged:
		return []byte("unchanged"), nil
	case Removed:
		return []byte("removed"), nil
	case Added:
		return []byte("added"), nil
	default:
		return nil, fmt.Errorf("invalid op: %d", int(op))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (op *Op) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unchanged":
		*op = Unchanged
	case "removed":
		*op = Removed
	case "added":
		*op = Added
	default:
		return fmt.Errorf("invalid op: %q", text)
	}
	return nil
}

// Part is a maximal run of text with the same operation. Text is never empty.
type Part struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Script is an ordered list of parts that transforms one text into another.
//
// No two consecutive parts have the same operation.
type Script []Part

// Input returns the text the script was computed from, i.e., the concatenation of all unchanged
// and removed parts.
func (s Script) Input() string {
	return s.join(Removed)
}

// Output returns the text the script transforms the input into, i.e., the concatenation of all
// unchanged and added parts.
func (s Script) Output() string {
	return s.join(Added)
}

func (s Script) join(op Op) string {
	var sb strings.Builder
	for _, p := range s {
		if p.Op == Unchanged || p.Op == op {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// Run is a maximal run of elements with the same operation. Units is never empty.
type Run[T any] struct {
	Op    Op
	Units []T
}

// Diff compares input and output character by character and returns the script that transforms
// input into output.
//
// If both input and output are empty, the script is empty. If they are identical, the script
// consists of a single unchanged part.
//
// The following options are supported: [Graphemes], [PreferRemoved]
func Diff(input, output string, opts ...Option) Script {
	cfg := config.FromOptions(opts, config.Graphemes|config.PreferRemovedFlag)
	x, y := units.Split(input, cfg.Unit), units.Split(output, cfg.Unit)
	runs := lcs.Diff(x.Units(), y.Units(), cfg)
	if len(runs) == 0 {
		return nil
	}
	out := make(Script, len(runs))
	for i, r := range runs {
		switch r.Flag {
		case edits.None:
			out[i] = Part{Unchanged, x.Slice(r.S0, r.S1)}
		case edits.Delete:
			out[i] = Part{Removed, x.Slice(r.S0, r.S1)}
		case edits.Insert:
			out[i] = Part{Added, y.Slice(r.T0, r.T1)}
		default:
			panic("never reached")
		}
	}
	return out
}

// Runs compares the contents of x and y and returns the runs necessary to convert from one to
// the other.
//
// The units of unchanged runs are taken from x. The returned runs share memory with x and y.
//
// The following option is supported: [PreferRemoved]
func Runs[T comparable](x, y []T, opts ...Option) []Run[T] {
	cfg := config.FromOptions(opts, config.PreferRemovedFlag)
	runs := lcs.Diff(x, y, cfg)
	if len(runs) == 0 {
		return nil
	}
	out := make([]Run[T], len(runs))
	for i, r := range runs {
		switch r.Flag {
		case edits.None:
			out[i] = Run[T]{Unchanged, x[r.S0:r.S1:r.S1]}
		case edits.Delete:
			out[i] = Run[T]{Removed, x[r.S0:r.S1:r.S1]}
		case edits.Insert:
			out[i] = Run[T]{Added, y[r.T0:r.T1:r.T1]}
		default:
			panic("never reached")
		}
	}
	return out
}
