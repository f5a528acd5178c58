// Copyright 2020-2026 The memarena Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the global heap façade's tunables from a YAML file,
// the same way the teacher's internal/testdata corpus is described in
// YAML. There is no required config file: Default() is always a valid
// Config, and Load is only needed to override it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the global heap façade's bootstrap parameters.
type Config struct {
	// InitialPages is how many pages the façade's pool starts with.
	InitialPages int `yaml:"initial_pages"`
	// MinSparePages is how many fully-free pages Free keeps around before
	// releasing one back to the system allocator.
	MinSparePages int `yaml:"min_spare_pages"`
	// DebugFilter is a regexp string applied to dbg.Log's package/file
	// filter when the module is built with -tags debug. Ignored otherwise.
	DebugFilter string `yaml:"debug_filter"`
}

// Default returns the façade's out-of-the-box configuration: 16 pages of 4
// KiB each, matching SPEC_FULL.md §4.6, and no spare-page floor.
func Default() Config {
	return Config{InitialPages: 16, MinSparePages: 0}
}

// Load reads and parses a YAML config file, starting from Default and
// overriding only the fields present in the file.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
