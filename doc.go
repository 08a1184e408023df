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

// Package chardiff compares two texts character by character and describes the difference as a
// short list of runs, similar to a word diff in a code review tool, but at the level of single
// characters.
//
// The main function is [Diff], which returns a [Script]: an ordered list of [Part]s where every
// part is a maximal run of unchanged, removed, or added text. The script reconstructs both inputs
// ([Script.Input], [Script.Output]) and summarizes them ([Script.Stats]). [Runs] does the same
// for arbitrary comparable slices.
//
// A character is a Unicode code point by default. Use [Graphemes] to compare user perceived
// characters (extended grapheme clusters) instead. Either way, a character is never split in the
// middle.
//
// The result is minimal, i.e., the unchanged parts form a longest common subsequence of both
// inputs, and it's deterministic: when there are multiple minimal scripts, removals are placed
// before additions. Use [PreferRemoved] to change that policy.
//
// Performance: Time and space complexity are O(NM) where N = len(x) and M = len(y). This is fine
// for short texts like the ones typed into a form field, but callers with large inputs must limit
// the input size themselves.
package chardiff
