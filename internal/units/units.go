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

// Package units splits text into the atomic units that are compared by the diff algorithm.
//
// Units are substrings of the original text, so splitting does not copy the text and the units
// can be mapped back to byte ranges of the original.
package units

import (
	"fmt"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"znkr.io/chardiff/internal/config"
)

// Text is a string split into units.
type Text struct {
	s     string
	units []string
	offs  []int // byte offset of every unit plus len(s)
}

// Split splits s into units of the given granularity.
//
// With [config.UnitRune], every code point is a unit. Bytes that are not part of a valid UTF-8
// encoding become units of their own, so Split never fails. With [config.UnitGrapheme], every
// extended grapheme cluster is a unit.
func Split(s string, u config.Unit) Text {
	var t Text
	switch u {
	case config.UnitRune:
		t = splitRunes(s)
	case config.UnitGrapheme:
		t = splitGraphemes(s)
	default:
		panic(fmt.Sprintf("unknown unit: %v", u))
	}
	t.offs = append(t.offs, len(s))
	return t
}

func splitRunes(s string) Text {
	n := utf8.RuneCountInString(s)
	t := Text{
		s:     s,
		units: make([]string, 0, n),
		offs:  make([]int, 0, n+1),
	}
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		t.units = append(t.units, s[i:i+size])
		t.offs = append(t.offs, i)
		i += size
	}
	return t
}

func splitGraphemes(s string) Text {
	t := Text{s: s}
	iter := graphemes.FromString(s)
	for iter.Next() {
		t.units = append(t.units, iter.Value())
		t.offs = append(t.offs, iter.Start())
	}
	return t
}

// Units returns the units of t. The result must not be modified.
func (t Text) Units() []string { return t.units }

// Slice returns the text of the units [i, j).
func (t Text) Slice(i, j int) string {
	return t.s[t.offs[i]:t.offs[j]]
}

// Count returns the number of units in s without retaining them.
func Count(s string, u config.Unit) int {
	switch u {
	case config.UnitRune:
		return utf8.RuneCountInString(s)
	case config.UnitGrapheme:
		n := 0
		iter := graphemes.FromString(s)
		for iter.Next() {
			n++
		}
		return n
	default:
		panic(fmt.Sprintf("unknown unit: %v", u))
	}
}
