/*
 Licensed to the Apache Software Foundation (ASF) under one
 or more contributor license agreements.  See the NOTICE file
 distributed with this work for additional information
 regarding copyright ownership.  The ASF licenses this file
 to you under the Apache License, Version 2.0 (the
 "License"); you may not use this file except in compliance
 with the License.  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package configs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sltools/sltop/pkg/sjob"
)

const (
	DefaultRefreshSeconds = 2.0
	DefaultMaxNameWidth   = 24
	DefaultConfigPath     = "~/.config/sltop/config.yaml"
)

var (
	// ErrInvalidRefresh returned when the refresh interval is zero or negative
	ErrInvalidRefresh = errors.New("refresh interval must be greater than zero")
	// ErrInvalidNameWidth returned when the name column width is not positive
	ErrInvalidNameWidth = errors.New("max name width must be greater than zero")
)

// Config is the resolved monitor configuration. Values come from the YAML
// config file with command line flags layered on top; the zero value is
// not usable, always start from NewConfig.
type Config struct {
	// RefreshSeconds is the poll cadence. Fixed for the whole run, the
	// loop never backs off on errors.
	RefreshSeconds float64 `yaml:"refreshSeconds,omitempty"`
	// MaxNameWidth caps the NAME column, longer names are truncated.
	MaxNameWidth int    `yaml:"maxNameWidth,omitempty"`
	SortPolicy   string `yaml:"sortPolicy,omitempty"`
	// Merge folds sibling jobs (same user, partition, name and state)
	// into a single row with an id range and a count.
	Merge bool `yaml:"merge,omitempty"`
	// ShowNodes toggles the per-node usage section above the job table.
	ShowNodes bool   `yaml:"showNodes,omitempty"`
	LogLevel  string `yaml:"logLevel,omitempty"`
}

func NewConfig() *Config {
	return &Config{
		RefreshSeconds: DefaultRefreshSeconds,
		MaxNameWidth:   DefaultMaxNameWidth,
		SortPolicy:     sjob.SourceOrder.String(),
		Merge:          true,
		ShowNodes:      true,
	}
}

// LoadConfigFromFile reads and validates a config file on top of the
// defaults. An empty path means DefaultConfigPath resolved against the
// home directory. A missing file is not an error, the defaults simply
// apply.
func LoadConfigFromFile(path string) (*Config, error) {
	conf := NewConfig()
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return conf, nil
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err = parseConfig(content, conf); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return conf, conf.Validate()
}

// defaultConfigPath expands DefaultConfigPath against the home
// directory, empty when no home is known.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, strings.TrimPrefix(DefaultConfigPath, "~/"))
}

func parseConfig(content []byte, conf *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true) // Enable strict unmarshaling behavior
	err := decoder.Decode(conf)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the boundary values and the sort policy name.
func (c *Config) Validate() error {
	if c.RefreshSeconds <= 0 {
		return ErrInvalidRefresh
	}
	if c.MaxNameWidth <= 0 {
		return ErrInvalidNameWidth
	}
	if _, err := sjob.ParseSortPolicy(c.SortPolicy); err != nil {
		return err
	}
	return nil
}

// Sort returns the parsed sort policy. Validate must have passed.
func (c *Config) Sort() sjob.SortPolicy {
	policy, err := sjob.ParseSortPolicy(c.SortPolicy)
	if err != nil {
		return sjob.SourceOrder
	}
	return policy
}
