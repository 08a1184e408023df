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

import "znkr.io/chardiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Graphemes compares extended grapheme clusters (user perceived characters, see [UAX #29])
// instead of code points. For example, an emoji with a skin tone modifier or a letter followed by
// a combining accent is a single character with this option and two without it.
//
// [UAX #29]: https://unicode.org/reports/tr29/
func Graphemes() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Unit = config.UnitGrapheme
		return config.Graphemes
	}
}

// PreferRemoved changes how ties between equally short scripts are broken. By default, when a
// character was replaced, the removed text is placed before the added text. With this option,
// the added text comes first.
func PreferRemoved() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.TieBreak = config.PreferRemoved
		return config.PreferRemovedFlag
	}
}
