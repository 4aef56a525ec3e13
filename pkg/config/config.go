// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads wlanaudit settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name looked up in the working directory and
// under $XDG_CONFIG_HOME/wlanaudit.
const DefaultConfigFile = "wlanaudit.yaml"

// DefaultWordlist is used when neither the flags nor the operator name one.
const DefaultWordlist = "wordlist.txt"

// Backends.
const (
	BackendAuto  = "auto"
	BackendNetsh = "netsh"
	BackendIWL   = "iwl"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config holds every tunable of a run.
type Config struct {
	Backend      string        `yaml:"backend"`
	Interface    string        `yaml:"interface"`
	Wordlist     string        `yaml:"wordlist"`
	Settle       time.Duration `yaml:"settle"`
	PollInterval time.Duration `yaml:"poll_interval"`
	PollTimeout  time.Duration `yaml:"poll_timeout"`
	DHCP         bool          `yaml:"dhcp"`
	TUI          bool          `yaml:"tui"`
}

// Default returns the settings used when no file is present: a single
// connection check five seconds after connecting.
func Default() Config {
	return Config{
		Backend:      BackendAuto,
		Wordlist:     DefaultWordlist,
		Settle:       5 * time.Second,
		PollInterval: time.Second,
	}
}

// Validate rejects values no backend can run with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendNetsh, BackendIWL:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Settle < 0 || c.PollTimeout < 0 {
		return fmt.Errorf("settle and poll_timeout must not be negative")
	}
	if c.PollTimeout > 0 && c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive when poll_timeout is set")
	}
	return nil
}

// Load reads path over the defaults. Fields missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, ErrConfigNotFound
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%s: %v", path, err)
	}
	if c.Backend == "" {
		c.Backend = BackendAuto
	}
	if c.Wordlist == "" {
		c.Wordlist = DefaultWordlist
	}
	return c, c.Validate()
}

// Find returns the configuration file to use: explicit if set, else
// DefaultConfigFile in the working directory, else the XDG config home.
// It returns "" when none exists.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("wlanaudit", DefaultConfigFile)); err == nil {
		return p
	}
	return ""
}

// Resolve loads the file Find picks. A missing file is only an error when
// explicit names it.
func Resolve(explicit string) (Config, error) {
	p := Find(explicit)
	if p == "" {
		return Default(), nil
	}
	c, err := Load(p)
	if errors.Is(err, ErrConfigNotFound) && explicit == "" {
		return Default(), nil
	}
	return c, err
}
