package benchmarks

import (
	"bufio"
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/chardiff"
)

// Impl is a character level diff implementation. Diff returns the number of added and removed
// characters, which is minimal if the implementation finds a longest common subsequence.
type Impl struct {
	Name string
	Diff func(x, y string) chardiff.Stats
}

var Impls = []Impl{
	{
		Name: "chardiff",
		Diff: func(x, y string) chardiff.Stats {
			return chardiff.Diff(x, y).Stats()
		},
	},
	{
		Name: "chardiff-graphemes",
		Diff: func(x, y string) chardiff.Stats {
			return chardiff.Diff(x, y, chardiff.Graphemes()).Stats()
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y string) chardiff.Stats {
			dmp := diffmatchpatch.New()
			dmp.DiffTimeout = 0
			var st chardiff.Stats
			for _, d := range dmp.DiffMainRunes([]rune(x), []rune(y), false) {
				switch d.Type {
				case diffmatchpatch.DiffInsert:
					st.Added += utf8.RuneCountInString(d.Text)
				case diffmatchpatch.DiffDelete:
					st.Removed += utf8.RuneCountInString(d.Text)
				}
			}
			return st
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y string) chardiff.Stats {
			var st chardiff.Stats
			for _, c := range godebug.DiffChunks(runeStrings(x), runeStrings(y)) {
				st.Added += len(c.Added)
				st.Removed += len(c.Deleted)
			}
			return st
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y string) chardiff.Stats {
			d := mb0runes{x: []rune(x), y: []rune(y)}
			var st chardiff.Stats
			for _, ch := range mb0.Diff(len(d.x), len(d.y), d) {
				st.Added += ch.Ins
				st.Removed += ch.Del
			}
			return st
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y string) chardiff.Stats {
			var st chardiff.Stats
			for _, e := range udiff.Strings(x, y) {
				st.Added += utf8.RuneCountInString(e.New)
				st.Removed += utf8.RuneCountInString(x[e.Start:e.End])
			}
			return st
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y string) chardiff.Stats {
			// go-internal only compares lines, every character is put on a line of its own to make
			// it compare characters.
			out := gointernal.Diff("x", runeLines(x), "y", runeLines(y))
			var st chardiff.Stats
			sc := bufio.NewScanner(bytes.NewReader(out))
			for sc.Scan() {
				switch line := sc.Bytes(); {
				case bytes.HasPrefix(line, []byte("+U+")):
					st.Added++
				case bytes.HasPrefix(line, []byte("-U+")):
					st.Removed++
				}
			}
			return st
		},
	},
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func runeLines(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		fmt.Fprintf(&buf, "%U\n", r)
	}
	return buf.Bytes()
}

type mb0runes struct {
	x []rune
	y []rune
}

func (d mb0runes) Equal(i, j int) bool { return d.x[i] == d.y[j] }
