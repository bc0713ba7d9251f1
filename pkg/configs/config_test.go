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
	"os"
	"path"
	"runtime"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/sltools/sltop/pkg/sjob"
)

func TestNewConfigDefaults(t *testing.T) {
	conf := NewConfig()
	assert.NilError(t, conf.Validate(), "defaults must validate")
	assert.Equal(t, conf.RefreshSeconds, 2.0)
	assert.Equal(t, conf.MaxNameWidth, 24)
	assert.Equal(t, conf.Sort(), sjob.SourceOrder)
	assert.Equal(t, conf.Merge, true)
	assert.Equal(t, conf.ShowNodes, true)
}

func TestParseConfig(t *testing.T) {
	data := `
refreshSeconds: 0.5
maxNameWidth: 40
sortPolicy: grouped
merge: false
showNodes: false
logLevel: debug
`
	conf := NewConfig()
	assert.NilError(t, parseConfig([]byte(data), conf))
	assert.NilError(t, conf.Validate())
	assert.Equal(t, conf.RefreshSeconds, 0.5)
	assert.Equal(t, conf.MaxNameWidth, 40)
	assert.Equal(t, conf.Sort(), sjob.Grouped)
	assert.Equal(t, conf.Merge, false)
	assert.Equal(t, conf.ShowNodes, false)
	assert.Equal(t, conf.LogLevel, "debug")
}

func TestParseConfigUnknownField(t *testing.T) {
	conf := NewConfig()
	err := parseConfig([]byte("pollingSeconds: 1\n"), conf)
	assert.Assert(t, err != nil, "unknown keys must be rejected")
}

func TestParseConfigEmpty(t *testing.T) {
	conf := NewConfig()
	assert.NilError(t, parseConfig(nil, conf), "empty content keeps the defaults")
	assert.Equal(t, conf.RefreshSeconds, 2.0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero refresh", func(c *Config) { c.RefreshSeconds = 0 }, ErrInvalidRefresh},
		{"negative refresh", func(c *Config) { c.RefreshSeconds = -1 }, ErrInvalidRefresh},
		{"zero width", func(c *Config) { c.MaxNameWidth = 0 }, ErrInvalidNameWidth},
		{"bad sort", func(c *Config) { c.SortPolicy = "by-user" }, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			conf := NewConfig()
			test.mutate(conf)
			err := conf.Validate()
			assert.Assert(t, err != nil, "expected validation failure")
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// keep the default path lookup away from the real home directory
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	file := path.Join(dir, "config.yaml")
	assert.NilError(t, os.WriteFile(file, []byte("sortPolicy: by-elapsed\n"), 0600))

	conf, err := LoadConfigFromFile(file)
	assert.NilError(t, err)
	assert.Equal(t, conf.Sort(), sjob.ByElapsed)

	// missing file falls back to the defaults
	conf, err = LoadConfigFromFile(path.Join(dir, "nope.yaml"))
	assert.NilError(t, err)
	assert.Equal(t, conf.RefreshSeconds, 2.0)

	// empty path with no file at the default location keeps the defaults
	conf, err = LoadConfigFromFile("")
	assert.NilError(t, err)
	assert.Equal(t, conf.MaxNameWidth, 24)
}

func TestLoadConfigFromDefaultPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("default path lookup keys off $HOME")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := path.Join(home, ".config", "sltop")
	assert.NilError(t, os.MkdirAll(dir, 0700))
	assert.NilError(t, os.WriteFile(path.Join(dir, "config.yaml"), []byte("maxNameWidth: 32\n"), 0600))

	conf, err := LoadConfigFromFile("")
	assert.NilError(t, err)
	assert.Equal(t, conf.MaxNameWidth, 32)
}
