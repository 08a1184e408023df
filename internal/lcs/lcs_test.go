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

package lcs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/internal/edits"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want [][]int
	}{
		{
			name: "empty",
			want: [][]int{{0}},
		},
		{
			name: "x-empty",
			y:    "ab",
			want: [][]int{{0, 0, 0}},
		},
		{
			name: "ab_ba",
			x:    "ab",
			y:    "ba",
			want: [][]int{
				{0, 0, 0},
				{0, 0, 1},
				{0, 1, 1},
			},
		},
		{
			name: "abc_abd",
			x:    "abc",
			y:    "abd",
			want: [][]int{
				{0, 0, 0, 0},
				{0, 1, 1, 1},
				{0, 1, 2, 2},
				{0, 1, 2, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := Build([]rune(tt.x), []rune(tt.y))
			n, m := tab.Dims()
			got := make([][]int, n+1)
			for i := range got {
				got[i] = make([]int, m+1)
				for j := range got[i] {
					got[i][j] = tab.At(i, j)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestTableLen(t *testing.T) {
	tests := []struct {
		x, y string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"ABCBDAB", "BDCABA", 4},
		{"ABCABBA", "CBABAC", 4},
		{"中文English混排", "中文 English 混排", 11},
	}
	for _, tt := range tests {
		got := Build([]rune(tt.x), []rune(tt.y)).Len()
		if got != tt.want {
			t.Errorf("Build(%q, %q).Len() = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		x, y        []string
		want        string
		wantRemoved string // with config.PreferRemoved, defaults to want
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: "MMM",
		},
		{
			name: "empty",
			x:    nil,
			y:    nil,
			want: "",
		},
		{
			name: "x-empty",
			x:    nil,
			y:    []string{"foo", "bar", "baz"},
			want: "III",
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			y:    nil,
			want: "DDD",
		},
		{
			name:        "abc_to_abd",
			x:           strings.Split("abc", ""),
			y:           strings.Split("abd", ""),
			want:        "MMDI",
			wantRemoved: "MMID",
		},
		{
			name:        "ab_to_ba",
			x:           strings.Split("ab", ""),
			y:           strings.Split("ba", ""),
			want:        "DMI",
			wantRemoved: "IMD",
		},
		{
			name: "ab_to_aab",
			x:    strings.Split("ab", ""),
			y:    strings.Split("aab", ""),
			want: "IMM",
		},
		{
			name:        "same-suffix",
			x:           []string{"foo", "bar"},
			y:           []string{"loo", "bar"},
			want:        "DIM",
			wantRemoved: "IDM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Run("prefer_added", func(t *testing.T) {
				got := render(Diff(tt.x, tt.y, config.Default))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
				}
			})

			t.Run("prefer_removed", func(t *testing.T) {
				want := tt.wantRemoved
				if want == "" {
					want = tt.want
				}
				cfg := config.Default
				cfg.TieBreak = config.PreferRemoved
				got := render(Diff(tt.x, tt.y, cfg))
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
				}
			})
		})
	}
}

func TestBacktrackStops(t *testing.T) {
	x, y := []rune("abcdef"), []rune("uvwxyz")
	tab := Build(x, y)
	n := 0
	for range Backtrack(x, y, tab, config.PreferAdded) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("Backtrack(...) produced %d events after break, want 3", n)
	}
}

func TestBacktrackSteps(t *testing.T) {
	x, y := []rune("kitten"), []rune("sitting")
	tab := Build(x, y)
	steps := 0
	for range Backtrack(x, y, tab, config.PreferAdded) {
		steps++
	}
	if steps > len(x)+len(y) {
		t.Errorf("Backtrack(...) took %d steps, want at most %d", steps, len(x)+len(y))
	}
	if want := len(x) + len(y) - tab.Len(); steps != want {
		t.Errorf("Backtrack(...) took %d steps, want %d", steps, want)
	}
}

func TestDiffPreallocates(t *testing.T) {
	tests := []struct {
		x, y string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 1},
		{"abc", "", 3},
		{"abc", "abd", 3},
		{"ab", "ba", 3},
		{"kitten", "sitting", 9},
	}
	for _, tt := range tests {
		x, y := []rune(tt.x), []rune(tt.y)
		if got := maxRuns(Build(x, y)); got != tt.want {
			t.Errorf("maxRuns(Build(%q, %q)) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
		runs := Diff(x, y, config.Config{TieBreak: config.PreferAdded})
		if len(runs) > tt.want {
			t.Errorf("Diff(%q, %q) has %d runs, more than %d", tt.x, tt.y, len(runs), tt.want)
		}
		if cap(runs) != tt.want {
			t.Errorf("Diff(%q, %q) has capacity %d, want %d", tt.x, tt.y, cap(runs), tt.want)
		}
	}
}

func render(runs []edits.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		var c string
		switch r.Flag {
		case edits.None:
			c = "M"
		case edits.Delete:
			c = "D"
		case edits.Insert:
			c = "I"
		}
		sb.WriteString(strings.Repeat(c, max(r.S1-r.S0, r.T1-r.T0)))
	}
	return sb.String()
}
