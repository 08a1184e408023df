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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"znkr.io/chardiff"
	"znkr.io/chardiff/normalize"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New(%+v) failed: %v", opts, err)
	}
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response body failed: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want %d", rec.Code, http.StatusOK)
	}
	got := decodeBody[map[string]string](t, rec)
	if diff := cmp.Diff(map[string]string{"status": "ok"}, got); diff != "" {
		t.Errorf("GET /health body is different [-want,+got]:\n%s", diff)
	}
}

func TestDiff(t *testing.T) {
	upper := normalize.Func(strings.ToUpper)
	tests := []struct {
		name string
		body string
		want diffResponse
	}{
		{
			name: "explicit-output",
			body: `{"seq":7,"input":"abc","output":"abd"}`,
			want: diffResponse{
				Seq:    7,
				Output: "abd",
				Parts: chardiff.Script{
					{Op: chardiff.Unchanged, Text: "ab"},
					{Op: chardiff.Removed, Text: "c"},
					{Op: chardiff.Added, Text: "d"},
				},
				Stats: chardiff.Stats{Added: 1, Removed: 1},
				Delta: "=2\t-1\t+d",
			},
		},
		{
			name: "normalized-output",
			body: `{"seq":1,"input":"aBc"}`,
			want: diffResponse{
				Seq:    1,
				Output: "ABC",
				Parts: chardiff.Script{
					{Op: chardiff.Removed, Text: "a"},
					{Op: chardiff.Added, Text: "A"},
					{Op: chardiff.Unchanged, Text: "B"},
					{Op: chardiff.Removed, Text: "c"},
					{Op: chardiff.Added, Text: "C"},
				},
				Stats: chardiff.Stats{Added: 2, Removed: 2},
				Delta: "-1\t+A\t=1\t-1\t+C",
			},
		},
		{
			name: "empty-output",
			body: `{"seq":2,"input":"ab","output":""}`,
			want: diffResponse{
				Seq:    2,
				Output: "",
				Parts:  chardiff.Script{{Op: chardiff.Removed, Text: "ab"}},
				Stats:  chardiff.Stats{Removed: 2},
				Delta:  "-2",
			},
		},
		{
			name: "both-empty",
			body: `{"seq":3,"input":"","output":""}`,
			want: diffResponse{
				Seq:   3,
				Parts: chardiff.Script{},
			},
		},
		{
			name: "prefer-removed",
			body: `{"input":"ab","output":"ba","preferRemoved":true}`,
			want: diffResponse{
				Output: "ba",
				Parts: chardiff.Script{
					{Op: chardiff.Added, Text: "b"},
					{Op: chardiff.Unchanged, Text: "a"},
					{Op: chardiff.Removed, Text: "b"},
				},
				Stats: chardiff.Stats{Added: 1, Removed: 1},
				Delta: "+b\t=1\t-1",
			},
		},
	}

	s := newTestServer(t, Options{Normalizer: upper})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, "POST", "/v1/diff", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("POST /v1/diff status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			got := decodeBody[diffResponse](t, rec)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("POST /v1/diff body is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffGraphemes(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"input":"e\u0301","output":"e\u0300","graphemes":true}`
	rec := do(t, s, "POST", "/v1/diff", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/diff status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body)
	}
	got := decodeBody[diffResponse](t, rec)
	want := chardiff.Script{
		{Op: chardiff.Removed, Text: "e\u0301"},
		{Op: chardiff.Added, Text: "e\u0300"},
	}
	if diff := cmp.Diff(want, got.Parts); diff != "" {
		t.Errorf("POST /v1/diff parts are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffErrors(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		body   string
		status int
	}{
		{"malformed-json", Options{}, `{"input":`, http.StatusBadRequest},
		{"unknown-field", Options{}, `{"input":"a","color":true}`, http.StatusBadRequest},
		{"wrong-type", Options{}, `{"input":1}`, http.StatusBadRequest},
		{"too-many-units", Options{MaxUnits: 4}, `{"input":"abc","output":"abd"}`, http.StatusRequestEntityTooLarge},
		{"body-too-large", Options{MaxBodyBytes: 16}, `{"input":"0123456789","output":"0123456789"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.opts)
			rec := do(t, s, "POST", "/v1/diff", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("POST /v1/diff status = %d, want %d; body: %s", rec.Code, tt.status, rec.Body)
			}
			got := decodeBody[errorResponse](t, rec)
			if got.Error == "" {
				t.Errorf("POST /v1/diff error message is empty")
			}
		})
	}
}

func TestDiffTooManyUnitsMessage(t *testing.T) {
	s := newTestServer(t, Options{MaxUnits: 4})
	rec := do(t, s, "POST", "/v1/diff", `{"input":"abc","output":"abd"}`)
	got := decodeBody[errorResponse](t, rec)
	if want := "input too large: 6 characters, limit is 4"; got.Error != want {
		t.Errorf("POST /v1/diff error = %q, want %q", got.Error, want)
	}
}

func TestNormalize(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, "POST", "/v1/normalize", `{"input":"中文English"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/normalize status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body)
	}
	got := decodeBody[normalizeResponse](t, rec)
	if want := "中文 English"; got.Output != want {
		t.Errorf("POST /v1/normalize output = %q, want %q", got.Output, want)
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct {
		method, path string
		status       int
	}{
		{"GET", "/v1/diff", http.StatusMethodNotAllowed},
		{"POST", "/health", http.StatusMethodNotAllowed},
		{"GET", "/v2/diff", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := do(t, s, tt.method, tt.path, "")
		if rec.Code != tt.status {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, "GET", "/health", "")
	id := rec.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a uuid: %v", id, err)
	}

	want := uuid.NewString()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, want)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != want {
		t.Errorf("request id = %q, want %q", got, want)
	}

	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got == "not-a-uuid" {
		t.Errorf("invalid request id was kept")
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: 1, RateBurst: 2})
	body := `{"input":"a","output":"b"}`
	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		rec := do(t, s, "POST", "/v1/diff", body)
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}

	// Health checks are never limited.
	if rec := do(t, s, "GET", "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Other clients have their own budget.
	req := httptest.NewRequest("POST", "/v1/diff", strings.NewReader(body))
	req.RemoteAddr = "198.51.100.7:4321"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestNewInvalidOptions(t *testing.T) {
	for _, opts := range []Options{
		{MaxBodyBytes: -1},
		{RateLimit: -1},
		{RateLimit: 1, RateBurst: 0},
	} {
		if _, err := New(opts); err == nil {
			t.Errorf("New(%+v) succeeded, want error", opts)
		}
	}
}
