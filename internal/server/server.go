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

// Package server exposes text comparison over HTTP.
//
// Clients send an input and optionally an output; if the output is missing, the server produces it
// with its normalizer. Responses echo the client's sequence number so that clients can discard
// results of superseded requests.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"znkr.io/chardiff/internal/guard"
	"znkr.io/chardiff/normalize"
)

// DefaultMaxBodyBytes is the default limit for request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Options configure a [Server].
type Options struct {
	// Normalizer produces the output for requests without one. Defaults to [normalize.Default].
	Normalizer normalize.Normalizer
	// MaxUnits limits the combined number of characters of input and output. Zero selects
	// [guard.DefaultMaxUnits], a negative value disables the limit.
	MaxUnits int
	// MaxBodyBytes limits the size of request bodies. Zero selects [DefaultMaxBodyBytes].
	MaxBodyBytes int64
	// RateLimit is the number of requests per second accepted from a single client. Zero
	// disables rate limiting.
	RateLimit float64
	// RateBurst is the number of requests a client can make at once.
	RateBurst int
	// Logger receives access logs. Defaults to discarding all logs.
	Logger *slog.Logger
}

// Validate checks that opts are usable.
func (opts Options) Validate() error {
	if opts.MaxBodyBytes < 0 {
		return errors.Errorf("negative max body bytes: %d", opts.MaxBodyBytes)
	}
	if opts.RateLimit < 0 {
		return errors.Errorf("negative rate limit: %v", opts.RateLimit)
	}
	if opts.RateLimit > 0 && opts.RateBurst < 1 {
		return errors.Errorf("rate burst must be positive with a rate limit, got %d", opts.RateBurst)
	}
	return nil
}

// Server handles comparison requests.
type Server struct {
	normalizer normalize.Normalizer
	maxUnits   int
	maxBody    int64
	limiter    *rateLimiter
	log        *slog.Logger
	handler    http.Handler
}

// New creates a new server.
func New(opts Options) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the server options")
	}
	s := &Server{
		normalizer: opts.Normalizer,
		maxUnits:   opts.MaxUnits,
		maxBody:    opts.MaxBodyBytes,
		log:        opts.Logger,
	}
	if s.normalizer == nil {
		s.normalizer = normalize.Default()
	}
	if s.maxUnits == 0 {
		s.maxUnits = guard.DefaultMaxUnits
	}
	if s.maxBody == 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if opts.RateLimit > 0 {
		s.limiter = newRateLimiter(opts.RateLimit, opts.RateBurst)
	}
	s.handler = s.newRouter()
	return s, nil
}

type route struct {
	method    string
	pattern   string
	handler   http.HandlerFunc
	rateLimit bool
}

func (s *Server) routes() []route {
	return []route{
		{"GET", "/health", s.health, false},
		{"POST", "/v1/diff", s.diff, true},
		{"POST", "/v1/normalize", s.normalize, true},
	}
}

func (s *Server) newRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	for _, rt := range s.routes() {
		var h http.Handler = rt.handler
		if rt.rateLimit && s.limiter != nil {
			h = s.limiter.middleware(h, s.log)
		}
		router.Handle(rt.pattern, h).Methods(rt.method)
	}
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})
	return requestID(s.accessLog(router))
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves requests on addr until ctx is canceled. Requests in flight are given a few
// seconds to complete.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return errors.Wrapf(err, "listening on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	return nil
}
