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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/config"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "graphemes",
			opts: []config.Option{
				chardiff.Graphemes(),
			},
			want: config.Config{
				Unit:     config.UnitGrapheme,
				TieBreak: config.Default.TieBreak,
			},
		},
		{
			name: "prefer-removed",
			opts: []config.Option{
				chardiff.PreferRemoved(),
			},
			want: config.Config{
				Unit:     config.Default.Unit,
				TieBreak: config.PreferRemoved,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				chardiff.PreferRemoved(),
				chardiff.Graphemes(),
			},
			want: config.Config{
				Unit:     config.UnitGrapheme,
				TieBreak: config.PreferRemoved,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Graphemes|config.PreferRemovedFlag)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if want := "Option chardiff.PreferRemoved not allowed here"; r != want {
			t.Errorf("FromOptions(...) panicked with %v, want %q", r, want)
		}
	}()
	config.FromOptions([]config.Option{chardiff.PreferRemoved()}, config.Graphemes)
}
