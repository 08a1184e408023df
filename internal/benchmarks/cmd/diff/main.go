// diff is a small CLI to manually run the diffing implementations used for benchmarking.
//
// By default, it prints the number of added and removed characters the selected library finds.
// With -all, it prints them for every library and marks results that are not minimal. With
// -script, it prints the edit script chardiff computes, one part per line.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/chardiff"
	"znkr.io/chardiff/internal/benchmarks"
)

type config struct {
	lib       string
	all       bool
	script    bool
	graphemes bool
	x, y      string
	txtar     string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "chardiff", "library to use for diffing")
	flag.BoolVar(&cfg.all, "all", false, "run all libraries and compare their results")
	flag.BoolVar(&cfg.script, "script", false, "print the chardiff edit script instead of the counts")
	flag.BoolVar(&cfg.graphemes, "graphemes", false, "diff grapheme clusters when printing the edit script")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, w io.Writer) error {
	x, y, err := readInputs(cfg)
	if err != nil {
		return err
	}

	switch {
	case cfg.script:
		var opts []chardiff.Option
		if cfg.graphemes {
			opts = append(opts, chardiff.Graphemes())
		}
		for _, p := range chardiff.Diff(x, y, opts...) {
			if _, err := fmt.Fprintf(w, "%-9s %q\n", p.Op, p.Text); err != nil {
				return err
			}
		}
		return nil
	case cfg.all:
		// chardiff is minimal, every other result is compared against it.
		minimal := chardiff.Diff(x, y).Stats()
		for _, lib := range benchmarks.Impls {
			st := lib.Diff(x, y)
			mark := ""
			if lib.Name != "chardiff-graphemes" && st.Added+st.Removed > minimal.Added+minimal.Removed {
				mark = " (not minimal)"
			}
			if _, err := fmt.Fprintf(w, "%s: +%d -%d%s\n", lib.Name, st.Added, st.Removed, mark); err != nil {
				return err
			}
		}
		return nil
	}

	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}
	st := lib.Diff(x, y)
	_, err = fmt.Fprintf(w, "%s: +%d -%d\n", lib.Name, st.Added, st.Removed)
	return err
}

func readInputs(cfg config) (x, y string, err error) {
	if cfg.txtar != "" {
		ar, err := txtar.ParseFile(cfg.txtar)
		if err != nil {
			return "", "", err
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x = string(f.Data)
			case "y":
				y = string(f.Data)
			}
		}
		return x, y, nil
	}
	bx, err := os.ReadFile(cfg.x)
	if err != nil {
		return "", "", err
	}
	by, err := os.ReadFile(cfg.y)
	if err != nil {
		return "", "", err
	}
	return string(bx), string(by), nil
}
