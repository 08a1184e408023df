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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// chardiff.Option.
package config

// Unit describes what counts as one atomic element when comparing text.
type Unit int

const (
	// One Unicode code point.
	UnitRune Unit = iota

	// One extended grapheme cluster as defined by UAX #29.
	UnitGrapheme
)

// TieBreak decides which edit is emitted when backtracking finds two equally long alignments.
type TieBreak int

const (
	// Emit the insertion first. Since the script is reconstructed back to front, this places
	// deletions before insertions in the final script.
	PreferAdded TieBreak = iota

	// Emit the deletion first.
	PreferRemoved
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Unit is the granularity used to split text before comparing it.
	Unit Unit

	// TieBreak is the policy to resolve ties between equally long alignments.
	TieBreak TieBreak
}

// Default is the default configuration.
var Default = Config{
	Unit:     UnitRune,
	TieBreak: PreferAdded,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by the function they are passed to.
type Flag int

const (
	Graphemes Flag = 1 << iota
	PreferRemovedFlag
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Graphemes:
		return "chardiff.Graphemes"
	case PreferRemovedFlag:
		return "chardiff.PreferRemoved"
	default:
		panic("never reached")
	}
}
