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

package log

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variable pointing at the log file. The terminal itself is
// owned by the live display, so without a file sink logging is disabled.
const logFileEnv = "SLTOP_LOG_FILE"

var once sync.Once
var logger *zap.Logger
var config *zap.Config
var aLevel *zap.AtomicLevel

func Logger() *zap.Logger {
	once.Do(func() {
		if logger = zap.L(); isNopLogger(logger) {
			// No global logger was set before the first use. Build our own
			// from the environment; stdout and stderr are off limits while
			// the alt screen is up so a missing file sink means no logging.
			path := os.Getenv(logFileEnv)
			if path == "" {
				logger = zap.NewNop()
				return
			}
			config = createConfig(path)
			var err error
			logger, err = config.Build()
			// this should really not happen so just write to stderr and set a Nop logger
			if err != nil {
				fmt.Fprintf(os.Stderr, "Logging disabled, logger init failed with error: %v\n", err)
				logger = zap.NewNop()
			}
		}
	})
	return logger
}

func IsDebugEnabled() bool {
	if logger == nil {
		// when under development mode
		return true
	}
	return logger.Core().Enabled(zapcore.DebugLevel)
}

// Returns true if the logger is a noop.
// Logger is a noop means the logger has not been initialized yet.
// This usually means a global logger is not set in the given context,
// see more at zap.ReplaceGlobals(). If the embedding process presets a
// global logger, sltop simply reuses it.
func isNopLogger(logger *zap.Logger) bool {
	return reflect.DeepEqual(zap.NewNop(), logger)
}

// Visible by tests
func InitAndSetLevel(level zapcore.Level) {
	if config == nil {
		Logger()
	}
	if config != nil {
		config.Level.SetLevel(level)
	}
}

// SetLevelFromName adjusts the active level from a config value like
// "debug" or "warn". Unknown names are ignored so a bad config entry
// cannot kill logging.
func SetLevelFromName(name string) {
	if name == "" {
		return
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		Logger().Warn("ignoring unknown log level", zap.String("level", name))
		return
	}
	InitAndSetLevel(level)
}

func GetAtomicLevel() *zap.AtomicLevel {
	return aLevel
}

// Create a log config to keep full control over the output:
// LogLevel set to INFO, console encoding, writes to the configured file
// so the live display is never corrupted by log lines.
func createConfig(path string) *zap.Config {
	atomicLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	aLevel = &atomicLevel

	return &zap.Config{
		Level:       atomicLevel,
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:    "message",
			LevelKey:      "level",
			TimeKey:       "time",
			NameKey:       "name",
			CallerKey:     "caller",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
			// note: https://godoc.org/go.uber.org/zap/zapcore#EncoderConfig
			// only EncodeName is optional all others must be set
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}
}
