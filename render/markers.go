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

package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
	"znkr.io/chardiff"
)

// Markers writes the combined text of s line by line. Every line containing a change is followed
// by a marker line with "-" under removed and "+" under added characters. Marker columns account
// for wide characters, so that CJK text lines up in a monospace terminal.
//
// A removed or added line break is marked in the column just past the end of its line.
func Markers(w io.Writer, s chardiff.Script, opts ...Option) error {
	st := newSettings(opts)
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = st.eastAsianWidth
	cond.StrictEmojiNeutral = true

	bw := bufio.NewWriter(w)
	var text, marks strings.Builder
	flush := func() {
		bw.WriteString(text.String())
		bw.WriteByte('\n')
		if m := strings.TrimRight(marks.String(), " "); m != "" {
			bw.WriteString(m)
			bw.WriteByte('\n')
		}
		text.Reset()
		marks.Reset()
	}

	for _, p := range s {
		mark := markFor(p.Op)
		g := graphemes.FromString(p.Text)
		for g.Next() {
			cluster := g.Value()
			if strings.ContainsRune(cluster, '\n') {
				if mark != ' ' {
					marks.WriteByte(mark)
				}
				flush()
				continue
			}
			text.WriteString(cluster)
			for range cond.StringWidth(cluster) {
				marks.WriteByte(mark)
			}
		}
	}
	if text.Len() > 0 || marks.Len() > 0 {
		flush()
	}
	return bw.Flush()
}

func markFor(op chardiff.Op) byte {
	switch op {
	case chardiff.Unchanged:
		return ' '
	case chardiff.Removed:
		return '-'
	case chardiff.Added:
		return '+'
	default:
		panic("never reached")
	}
}
