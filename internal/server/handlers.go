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

	"github.com/pkg/errors"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/config"
	"znkr.io/chardiff/internal/guard"
	"znkr.io/chardiff/render"
)

type diffRequest struct {
	Seq           int64   `json:"seq"`
	Input         string  `json:"input"`
	Output        *string `json:"output"`
	Graphemes     bool    `json:"graphemes"`
	PreferRemoved bool    `json:"preferRemoved"`
}

type diffResponse struct {
	Seq    int64           `json:"seq"`
	Output string          `json:"output"`
	Parts  chardiff.Script `json:"parts"`
	Stats  chardiff.Stats  `json:"stats"`
	Delta  string          `json:"delta"`
}

type normalizeRequest struct {
	Input string `json:"input"`
}

type normalizeResponse struct {
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) diff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if !s.decode(w, r, &req) {
		return
	}

	output := ""
	if req.Output != nil {
		output = *req.Output
	} else {
		output = s.normalizer.Normalize(req.Input)
	}

	unit := config.UnitRune
	var opts []chardiff.Option
	if req.Graphemes {
		unit = config.UnitGrapheme
		opts = append(opts, chardiff.Graphemes())
	}
	if req.PreferRemoved {
		opts = append(opts, chardiff.PreferRemoved())
	}
	if err := guard.Check(req.Input, output, unit, s.maxUnits); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	script := chardiff.Diff(req.Input, output, opts...)
	if script == nil {
		script = chardiff.Script{}
	}
	stats := script.Stats()
	s.log.Debug("diff",
		"request_id", RequestID(r.Context()),
		"seq", req.Seq,
		"parts", len(script),
		"added", stats.Added,
		"removed", stats.Removed,
	)
	writeJSON(w, http.StatusOK, diffResponse{
		Seq:    req.Seq,
		Output: output,
		Parts:  script,
		Stats:  stats,
		Delta:  render.Delta(script),
	})
}

func (s *Server) normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Output: s.normalizer.Normalize(req.Input)})
}

// decode reads the JSON request body into v. If that fails, it writes an error response and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, errors.Errorf("request body too large, limit is %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, http.StatusBadRequest, errors.Wrap(err, "decoding request"))
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) // the status is already sent, nothing to do on failure
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
