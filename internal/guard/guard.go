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

// Package guard limits the size of inputs before they are compared.
//
// Comparing texts takes time and memory proportional to the product of their lengths. Callers
// that accept input from users check it with [Check] first.
package guard

import (
	"fmt"

	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/internal/units"
)

// DefaultMaxUnits is the default limit for the combined number of characters of both inputs.
//
// At the limit, the alignment table has at most 5000*5000 cells of 4 bytes each.
const DefaultMaxUnits = 10000

// TooLargeError is returned by [Check] if the inputs are too large.
type TooLargeError struct {
	Units int // Combined number of units of both inputs.
	Limit int // Maximum number of units.
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("input too large: %d characters, limit is %d", e.Units, e.Limit)
}

// Check returns a [*TooLargeError] if input and output together have more than limit units. A
// limit <= 0 disables the check.
func Check(input, output string, unit config.Unit, limit int) error {
	if limit <= 0 {
		return nil
	}
	// Counting bytes is cheaper and an upper bound for the number of units.
	if len(input)+len(output) <= limit {
		return nil
	}
	n := units.Count(input, unit) + units.Count(output, unit)
	if n > limit {
		return &TooLargeError{Units: n, Limit: limit}
	}
	return nil
}
