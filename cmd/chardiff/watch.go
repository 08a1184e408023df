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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
)

// watchDebounce is the quiet period after the last change before a file is compared again.
const watchDebounce = 50 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var poll time.Duration
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Show the changes the normalizer makes whenever FILE changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, &a.cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, args[0], poll)
		},
	}
	cmd.Flags().DurationVar(&poll, "poll", 0, "poll for changes at this interval instead of using file system notifications")
	cmd.Flags().StringSlice("rule", nil, "rules to apply in the given order (defaults to all rules)")
	addEngineFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

// runWatch compares FILE with its normalized form whenever it changes. With a zero poll interval,
// changes are detected with file system notifications.
func (a *app) runWatch(ctx context.Context, path string, poll time.Duration) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "resolving path")
	}
	n, err := a.normalizer()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan string
	var errs <-chan error
	if poll > 0 {
		pw := watcher.New()
		pw.SetMaxEvents(1)
		pw.FilterOps(watcher.Write, watcher.Create, watcher.Rename, watcher.Move)
		if err := pw.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
		go func() {
			if err := pw.Start(poll); err != nil {
				a.log.Error("polling stopped", "err", err)
			}
		}()
		defer func() {
			// Start blocks on sending to its channels, keep them drained until it has stopped.
			go func() {
				for {
					select {
					case <-pw.Event:
					case <-pw.Error:
					case <-pw.Closed:
						return
					}
				}
			}()
			pw.Wait()
			pw.Close()
		}()
		events := forward[watcher.Event](ctx, pw.Event, func(ev watcher.Event) (string, bool) {
			return ev.Path, true
		})
		changes, errs = keepWatching(ctx, pw, path, poll, events, a.log)
	} else {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "creating watcher")
		}
		defer fsw.Close()
		// Editors often replace files instead of writing them, watching the directory catches both.
		if err := fsw.Add(filepath.Dir(path)); err != nil {
			return errors.Wrapf(err, "watching %s", filepath.Dir(path))
		}
		changes = forward[fsnotify.Event](ctx, fsw.Events, func(ev fsnotify.Event) (string, bool) {
			return ev.Name, ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
		})
		errs = fsw.Errors
	}

	refresh := func(gen uint64) error {
		input, err := a.readInput(path)
		if err != nil {
			// The file may be in the middle of being replaced, the next event brings it back.
			a.log.Warn("skipping generation", "generation", gen, "err", err)
			return nil
		}
		if _, err := fmt.Fprintf(a.stdout, "--- %s (generation %d)\n", filepath.Base(path), gen); err != nil {
			return errors.Wrap(err, "writing output")
		}
		return a.showChanges(a.stdout, input, n.Normalize(input))
	}
	return watchLoop(ctx, path, changes, errs, watchDebounce, refresh, a.log)
}

// forward sends the names of the relevant events from in until ctx is done or in is closed.
func forward[E any](ctx context.Context, in <-chan E, relevant func(E) (string, bool)) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-in:
				if !ok {
					return
				}
				name, ok := relevant(ev)
				if !ok {
					continue
				}
				if !send(ctx, out, name) {
					return
				}
			}
		}
	}()
	return out
}

// keepWatching passes on the events and errors of pw. The deletion of path is reported as a change
// instead of an error, so the generation is skipped, and path is added back to pw once it exists
// again.
func keepWatching(ctx context.Context, pw *watcher.Watcher, path string, poll time.Duration, events <-chan string, log *slog.Logger) (<-chan string, <-chan error) {
	changes := make(chan string)
	errs := make(chan error)
	go func() {
		defer close(changes)
		var retry *time.Ticker
		var readd <-chan time.Time
		defer func() {
			if retry != nil {
				retry.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case name, ok := <-events:
				if !ok {
					return
				}
				if !send(ctx, changes, name) {
					return
				}
			case err := <-pw.Error:
				if !errors.Is(err, watcher.ErrWatchedFileDeleted) {
					if !send(ctx, errs, err) {
						return
					}
					continue
				}
				log.Warn("watched file deleted", "path", path)
				if retry == nil {
					retry = time.NewTicker(poll)
					readd = retry.C
				}
				if !send(ctx, changes, path) {
					return
				}
			case <-readd:
				if err := pw.Add(path); err != nil {
					continue
				}
				retry.Stop()
				retry, readd = nil, nil
				log.Info("watching again", "path", path)
				if !send(ctx, changes, path) {
					return
				}
			}
		}
	}()
	return changes, errs
}

// send sends v on ch unless ctx is done first.
func send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// watchLoop calls refresh once at the start and then after every burst of changes to path. Every
// change starts a new generation; only the latest generation is refreshed once the file has been
// quiet for the debounce period.
func watchLoop(ctx context.Context, path string, changes <-chan string, errs <-chan error, debounce time.Duration, refresh func(gen uint64) error, log *slog.Logger) error {
	var gen uint64
	if err := refresh(gen); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-changes:
			if !ok {
				return nil
			}
			if filepath.Clean(name) != path {
				continue
			}
			if fire != nil {
				log.Debug("dropping stale generation", "generation", gen)
				timer.Stop()
			}
			gen++
			timer = time.NewTimer(debounce)
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watching")
		case <-fire:
			fire = nil
			if err := refresh(gen); err != nil {
				return err
			}
		}
	}
}
