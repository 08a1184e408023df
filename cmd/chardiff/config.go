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
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"znkr.io/chardiff/internal/guard"
	"znkr.io/chardiff/normalize"
)

// Config holds the chardiff configuration.
type Config struct {
	MaxUnits      int      `yaml:"maxUnits"`
	Graphemes     bool     `yaml:"graphemes"`
	PreferRemoved bool     `yaml:"preferRemoved"`
	Color         string   `yaml:"color"`
	Format        string   `yaml:"format"`
	Rules         []string `yaml:"rules"`
	Addr          string   `yaml:"addr"`
	RateLimit     float64  `yaml:"rateLimit"`
	RateBurst     int      `yaml:"rateBurst"`
}

var (
	formats    = []string{"plain", "ansi", "html", "markers", "delta", "json"}
	colorModes = []string{"auto", "always", "never"}
)

func defaultConfig() Config {
	return Config{
		MaxUnits:  guard.DefaultMaxUnits,
		Color:     "auto",
		Format:    "ansi",
		Addr:      "localhost:8080",
		RateLimit: 10,
		RateBurst: 20,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxUnits < 0 {
		return errors.Errorf("maxUnits must not be negative, got %d", c.MaxUnits)
	}
	if !slices.Contains(formats, c.Format) {
		return errors.Errorf("unknown format %q, want one of %v", c.Format, formats)
	}
	if !slices.Contains(colorModes, c.Color) {
		return errors.Errorf("unknown color mode %q, want one of %v", c.Color, colorModes)
	}
	if _, err := normalize.New(c.Rules...); err != nil {
		return errors.Wrap(err, "invalid rules")
	}
	if c.RateLimit < 0 {
		return errors.Errorf("rateLimit must not be negative, got %v", c.RateLimit)
	}
	if c.RateBurst < 0 {
		return errors.Errorf("rateBurst must not be negative, got %d", c.RateBurst)
	}
	return nil
}

// defaultConfigPath returns the path to the config file in the user's config directory.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding the config directory")
	}
	return filepath.Join(dir, "chardiff", "config.yaml"), nil
}

// loadConfig reads the config file at path on top of the defaults. A missing file is only an error
// if the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}

	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "unmarshalling config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "validating config %s", path)
	}
	return cfg, nil
}
