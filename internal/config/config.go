// Copyright 2026 The nabla Authors
// This file is part of the nabla toolchain.
//
// The nabla toolchain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nabla toolchain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nabla toolchain. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the optional nabla.toml file that sits next to a
// project's sources.
package config

import (
	"os"
	"path/filepath"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// Config holds the handful of ambient knobs the core doesn't parse from
// the command line: colored diagnostics and additional source roots
// beyond the conventional src/ and deps/ directories.
type Config struct {
	Color       *bool    `toml:"color"`
	SourceRoots []string `toml:"source_roots"`
}

// Default returns the zero-value configuration: color auto-detected, no
// extra source roots.
func Default() Config { return Config{} }

// Load reads nabla.toml from dir, if present. A missing file is not an
// error; it returns Default().
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, "nabla.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrapf(err, "reading %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// ColorEnabled resolves the effective color setting: an explicit
// nabla.toml value wins, otherwise fall back to autoDetected.
func (c Config) ColorEnabled(autoDetected bool) bool {
	if c.Color != nil {
		return *c.Color
	}
	return autoDetected
}
