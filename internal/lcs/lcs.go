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

// Package lcs computes the longest common subsequence table of two slices and reconstructs an
// edit script from it.
//
// The table has (len(x)+1)*(len(y)+1) cells, i.e., time and space complexity are O(NM). This is
// a known limit: callers are expected to bound the size of the inputs before calling into this
// package.
package lcs

import (
	"fmt"
	"iter"
	"math"

	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/internal/edits"
)

// Table is the alignment table of two slices x and y.
//
// At(i, j) is the length of the longest common subsequence of x[:i] and y[:j]. The table is
// written once by [Build] and never modified afterwards.
type Table struct {
	n, m  int     // len(x), len(y)
	cells []int32 // row major, (n+1)*(m+1) cells
}

// Build computes the alignment table for x and y.
func Build[T comparable](x, y []T) Table {
	n, m := len(x), len(y)
	if min(n, m) > math.MaxInt32 {
		panic(fmt.Sprintf("input too large: %d x %d", n, m))
	}
	w := m + 1
	cells := make([]int32, (n+1)*w)
	for i := 1; i <= n; i++ {
		prev, row := cells[(i-1)*w:i*w], cells[i*w:(i+1)*w]
		for j := 1; j <= m; j++ {
			if x[i-1] == y[j-1] {
				row[j] = prev[j-1] + 1
			} else {
				row[j] = max(prev[j], row[j-1])
			}
		}
	}
	return Table{n: n, m: m, cells: cells}
}

// At returns the length of the longest common subsequence of x[:i] and y[:j].
func (t Table) At(i, j int) int {
	if i < 0 || i > t.n || j < 0 || j > t.m {
		panic(fmt.Sprintf("index (%d, %d) out of range [0, %d]x[0, %d]", i, j, t.n, t.m))
	}
	return int(t.cells[i*(t.m+1)+j])
}

// Len returns the length of the longest common subsequence of x and y.
func (t Table) Len() int { return t.At(t.n, t.m) }

// Dims returns the lengths of x and y the table was built for.
func (t Table) Dims() (n, m int) { return t.n, t.m }

// Backtrack walks the table from the end of both inputs to the start and yields one event per
// step, i.e., the events are in reverse document order.
//
// Matching elements are always consumed together. Otherwise, the step that keeps the longest
// common subsequence is taken. If both steps are equally good, tie decides: with
// [config.PreferAdded] the insertion is yielded first.
func Backtrack[T comparable](x, y []T, tab Table, tie config.TieBreak) iter.Seq[edits.Event] {
	if n, m := tab.Dims(); n != len(x) || m != len(y) {
		panic(fmt.Sprintf("table of size %dx%d does not match inputs of size %dx%d", n, m, len(x), len(y)))
	}
	return func(yield func(edits.Event) bool) {
		i, j := len(x), len(y)
		for i > 0 || j > 0 {
			var e edits.Event
			switch {
			case i > 0 && j > 0 && x[i-1] == y[j-1]:
				i--
				j--
				e = edits.Event{Flag: edits.None, S: i, T: j}
			case insertFirst(tab, i, j, tie):
				j--
				e = edits.Event{Flag: edits.Insert, S: i, T: j}
			default:
				i--
				e = edits.Event{Flag: edits.Delete, S: i, T: j}
			}
			if !yield(e) {
				return
			}
		}
	}
}

// insertFirst reports whether an insertion of y[j-1] is the next step. The caller has already
// ruled out a match.
func insertFirst(tab Table, i, j int, tie config.TieBreak) bool {
	switch tie {
	case config.PreferAdded:
		return j > 0 && (i == 0 || tab.At(i, j-1) >= tab.At(i-1, j))
	case config.PreferRemoved:
		return !(i > 0 && (j == 0 || tab.At(i-1, j) >= tab.At(i, j-1)))
	default:
		panic(fmt.Sprintf("unknown tie break: %v", tie))
	}
}

// Diff compares x and y and returns the runs of the resulting edit script in document order.
func Diff[T comparable](x, y []T, cfg config.Config) []edits.Run {
	tab := Build(x, y)
	return edits.Aggregate(Backtrack(x, y, tab, cfg.TieBreak), maxRuns(tab))
}

// maxRuns returns an upper bound for the number of runs of the edit script of tab. Every run
// covers at least one step and no two unchanged runs are adjacent.
func maxRuns(tab Table) int {
	n, m := tab.Dims()
	l := tab.Len()
	return min(n+m-l, 2*(n+m-2*l)+1)
}
