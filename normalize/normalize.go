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

// Package normalize provides text normalizers whose output is compared with their input.
//
// The main normalizer is [Copywriting], which applies a small set of rules for mixed Chinese,
// Japanese, or Korean and Latin text: consistent width of letters and digits, full-width
// punctuation after CJK characters, and spaces between CJK characters and Latin letters or digits.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer transforms text into its normalized form. Implementations must be deterministic and
// safe for concurrent use.
type Normalizer interface {
	Normalize(s string) string
}

// Func adapts a function to the [Normalizer] interface.
type Func func(s string) string

func (f Func) Normalize(s string) string { return f(s) }

// Rule is a single normalization step.
type Rule struct {
	Name  string
	Apply func(s string) string
}

var rules = []Rule{
	{"nfc", norm.NFC.String},
	{"fullwidth-alnum", fullwidthAlnum},
	{"cjk-punctuation", cjkPunctuation},
	{"repeated-punctuation", repeatedPunctuation},
	{"punctuation-spacing", punctuationSpacing},
	{"cjk-latin-spacing", cjkLatinSpacing},
}

// Rules returns all available rules in the order they are applied by [Default].
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Copywriting applies a sequence of rules.
type Copywriting struct {
	rules []Rule
}

// Default returns a normalizer that applies all rules.
func Default() *Copywriting {
	return &Copywriting{rules: Rules()}
}

// New returns a normalizer that applies the named rules in the given order.
func New(names ...string) (*Copywriting, error) {
	c := &Copywriting{}
	for _, name := range names {
		i := indexRule(name)
		if i < 0 {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		c.rules = append(c.rules, rules[i])
	}
	return c, nil
}

func indexRule(name string) int {
	for i, r := range rules {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Normalize applies all rules of c to s.
func (c *Copywriting) Normalize(s string) string {
	for _, r := range c.rules {
		s = r.Apply(s)
	}
	return s
}

// Names returns the names of the rules applied by c.
func (c *Copywriting) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

func isLatinAlnum(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isFullwidthAlnum(r rune) bool {
	return '０' <= r && r <= '９' || 'Ａ' <= r && r <= 'Ｚ' || 'ａ' <= r && r <= 'ｚ'
}

// fullwidthAlnum replaces full-width letters and digits by their ASCII counterparts.
func fullwidthAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if isFullwidthAlnum(r) {
			return width.LookupRune(r).Narrow()
		}
		return r
	}, s)
}

var fullwidthPunctuation = map[rune]rune{
	',': '，',
	'.': '。',
	'!': '！',
	'?': '？',
	':': '：',
	';': '；',
}

// cjkPunctuation replaces half-width punctuation directly after a CJK character. A period
// followed by a letter or digit is kept, it's likely part of a name like a domain.
func cjkPunctuation(s string) string {
	rs := []rune(s)
	changed := false
	for i, r := range rs {
		full, ok := fullwidthPunctuation[r]
		if !ok || i == 0 || !isCJK(rs[i-1]) {
			continue
		}
		if r == '.' && i+1 < len(rs) && isLatinAlnum(rs[i+1]) {
			continue
		}
		rs[i] = full
		changed = true
	}
	if !changed {
		return s
	}
	return string(rs)
}

func isCollapsible(r rune) bool {
	return strings.ContainsRune("。！？，", r)
}

// repeatedPunctuation collapses runs of the same full-width punctuation mark.
func repeatedPunctuation(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		if r == prev && isCollapsible(r) {
			continue
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func isFullwidthPunctuation(r rune) bool {
	return strings.ContainsRune("，。！？：；、「」『』（）《》", r)
}

func isSpace(r rune) bool { return r == ' ' || r == '　' }

// punctuationSpacing removes spaces next to full-width punctuation. A run of spaces is removed as
// a whole if the rune before or after it is full-width punctuation.
func punctuationSpacing(s string) string {
	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(rs); {
		if !isSpace(rs[i]) {
			sb.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && isSpace(rs[j]) {
			j++
		}
		before, after := rune(-1), rune(-1)
		if i > 0 {
			before = rs[i-1]
		}
		if j < len(rs) {
			after = rs[j]
		}
		if !isFullwidthPunctuation(before) && !isFullwidthPunctuation(after) {
			sb.WriteString(string(rs[i:j]))
		}
		i = j
	}
	return sb.String()
}

// cjkLatinSpacing inserts a space between a CJK character and an adjacent ASCII letter or digit.
func cjkLatinSpacing(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		if isCJK(prev) && isLatinAlnum(r) || isLatinAlnum(prev) && isCJK(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
