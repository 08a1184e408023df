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
	"strconv"
	"strings"
	"unicode/utf8"
)

// Stats summarizes a script.
type Stats struct {
	Added   int `json:"added"`   // Number of added characters
	Removed int `json:"removed"` // Number of removed characters
}

// Changed reports whether any characters were added or removed.
func (s Stats) Changed() bool { return s.Added > 0 || s.Removed > 0 }

// String formats s as "+A -R", leaving out zero counts. It returns the empty string if nothing
// changed.
func (s Stats) String() string {
	var parts []string
	if s.Added > 0 {
		parts = append(parts, "+"+strconv.Itoa(s.Added))
	}
	if s.Removed > 0 {
		parts = append(parts, "-"+strconv.Itoa(s.Removed))
	}
	return strings.Join(parts, " ")
}

// Stats returns the number of added and removed code points in s.
func (s Script) Stats() Stats {
	var st Stats
	for _, p := range s {
		switch p.Op {
		case Added:
			st.Added += utf8.RuneCountInString(p.Text)
		case Removed:
			st.Removed += utf8.RuneCountInString(p.Text)
		}
	}
	return st
}

// RunStats returns the number of added and removed units in runs.
func RunStats[T any](runs []Run[T]) Stats {
	var st Stats
	for _, r := range runs {
		switch r.Op {
		case Added:
			st.Added += len(r.Units)
		case Removed:
			st.Removed += len(r.Units)
		}
	}
	return st
}
