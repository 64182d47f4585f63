// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/ledgervm/refsafety/modroot"
)

// Config is the representation of refverify's YAML config file: settings
// that don't belong on a command line, per the ambient configuration
// stack this module follows from cmd/ocprometheus.
type Config struct {
	// Variant is the analyzer variant used when -variant is not given; it
	// takes precedence over ANALYZER_VARIANT.
	Variant string `yaml:"variant,omitempty"`
	// Concurrency bounds how many functions RunBatch analyzes at once
	// when refverify is given more than one FunctionUnit.
	Concurrency int64 `yaml:"concurrency,omitempty"`
	// CollectAllErrors mirrors verifier.Options.CollectAllErrors.
	CollectAllErrors bool `yaml:"collect-all-errors,omitempty"`
	// StrictCopyLoc mirrors transfer.Options.StrictCopyLoc.
	StrictCopyLoc bool `yaml:"strict-copyloc,omitempty"`
}

// defaultConfigPath returns the conventional config file location,
// rooted at the module's own root (modroot.Path, in place of $GOPATH) —
// used only when -config is not given.
func defaultConfigPath() string {
	return filepath.Join(modroot.Path(), "refverify.yaml")
}

// loadConfig reads and parses the YAML config at path. A missing default
// config file is not an error: refverify runs with its built-in defaults.
func loadConfig(path string, isDefault bool) (*Config, error) {
	cfg := &Config{Variant: "", Concurrency: 4}
	data, err := os.ReadFile(path)
	if err != nil {
		if isDefault && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("refverify: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("refverify: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
