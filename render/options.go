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

import "github.com/fatih/color"

// An Option configures a renderer.
type Option func(*settings)

type settings struct {
	color          *bool
	eastAsianWidth bool
	added          []color.Attribute
	removed        []color.Attribute
}

func newSettings(opts []Option) settings {
	st := settings{
		added:   []color.Attribute{color.FgGreen, color.Underline},
		removed: []color.Attribute{color.FgRed, color.CrossedOut},
	}
	for _, opt := range opts {
		opt(&st)
	}
	return st
}

func (st settings) useColor() bool {
	if st.color != nil {
		return *st.color
	}
	return !color.NoColor
}

// Color forces colors on or off. By default, colors are used if the standard output is a
// terminal and the NO_COLOR environment variable is not set.
func Color(on bool) Option {
	return func(st *settings) {
		st.color = &on
	}
}

// Added sets the attributes used for added text.
func Added(attrs ...color.Attribute) Option {
	return func(st *settings) {
		st.added = attrs
	}
}

// Removed sets the attributes used for removed text.
func Removed(attrs ...color.Attribute) Option {
	return func(st *settings) {
		st.removed = attrs
	}
}

// EastAsianWidth treats characters of ambiguous width as two columns wide when computing the
// marker positions in [Markers]. Use it if the terminal runs with an East Asian locale.
func EastAsianWidth(on bool) Option {
	return func(st *settings) {
		st.eastAsianWidth = on
	}
}
