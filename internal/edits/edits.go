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

// Package edits contains the internal edits representation that's produced by the backtracking
// pass over the alignment table and is then translated to a user facing API.
package edits

import (
	"fmt"
	"iter"
	"slices"
)

// Flag describes what happens to a single element.
//
// None is a match: the element is present in both x and y. Delete marks an element of x that is
// missing from y and Insert marks an element of y that is missing from x.
type Flag uint8

const (
	None   Flag = 0
	Delete Flag = 1 << iota
	Insert
)

func (e Flag) String() string {
	switch e {
	case None:
		return "none"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return fmt.Sprint(uint8(e))
	}
}

// Event is a single atomic edit at position S in x and T in y.
//
//   - For None, x[S] and y[T] match.
//   - For Delete, x[S] is deleted; T is the position in y the deletion happens at.
//   - For Insert, y[T] is inserted; S is the position in x the insertion happens at.
type Event struct {
	Flag Flag
	S, T int
}

// Run describes a maximal sequence of consecutive events with the same flag.
type Run struct {
	Flag   Flag
	S0, S1 int // Start and end of the run in x.
	T0, T1 int // Start and end of the run in y.
}

func (e Event) run() Run {
	switch e.Flag {
	case None:
		return Run{None, e.S, e.S + 1, e.T, e.T + 1}
	case Delete:
		return Run{Delete, e.S, e.S + 1, e.T, e.T}
	case Insert:
		return Run{Insert, e.S, e.S, e.T, e.T + 1}
	default:
		panic(fmt.Sprintf("invalid flag: %v", e.Flag))
	}
}

// Aggregate merges events that are produced in reverse document order (from the end of both
// inputs to the start) into maximal runs and returns them in document order.
//
// An event with the same flag as the most recent run extends that run towards the front. The
// runs are collected back to front and reversed once at the end. The hint is used to preallocate
// the result and may be zero.
func Aggregate(events iter.Seq[Event], hint int) []Run {
	var runs []Run
	if hint > 0 {
		runs = make([]Run, 0, hint)
	}
	for e := range events {
		er := e.run()
		if n := len(runs); n > 0 && runs[n-1].Flag == e.Flag {
			r := &runs[n-1]
			if r.S0 != er.S1 || r.T0 != er.T1 {
				panic(fmt.Sprintf("event %+v is not adjacent to run %+v", e, *r))
			}
			r.S0, r.T0 = er.S0, er.T0
			continue
		}
		runs = append(runs, er)
	}
	slices.Reverse(runs)
	return runs
}
