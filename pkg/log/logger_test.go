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
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gotest.tools/v3/assert"
)

func resetGlobals() {
	once = sync.Once{}
	logger = nil
	config = nil
	aLevel = nil
	zap.ReplaceGlobals(zap.NewNop())
}

// This test sets the global zap logger. This must be undone to make sure no side
// effects on other tests are caused by running this test.
func TestIsNopLogger(t *testing.T) {
	defer resetGlobals()

	testLogger, err := zap.NewDevelopment()
	assert.NilError(t, err, "dev logger init failed")
	assert.Equal(t, false, isNopLogger(testLogger))

	testLogger = zap.NewNop()
	assert.Equal(t, true, isNopLogger(testLogger))

	testLogger, err = zap.NewProduction()
	assert.NilError(t, err, "prod logger init failed")
	zap.ReplaceGlobals(testLogger)
	assert.Equal(t, false, isNopLogger(testLogger))
	assert.Equal(t, false, isNopLogger(zap.L()))
}

// Logging falls back to a nop logger when no global logger and no file sink
// are configured: the terminal is reserved for the live display.
func TestLoggerDefaultsToNop(t *testing.T) {
	defer resetGlobals()
	resetGlobals()

	t.Setenv(logFileEnv, "")
	assert.Equal(t, true, isNopLogger(Logger()))
}

func TestLoggerUsesFileSink(t *testing.T) {
	defer resetGlobals()
	resetGlobals()

	t.Setenv(logFileEnv, t.TempDir()+"/sltop.log")
	assert.Equal(t, false, isNopLogger(Logger()))
	assert.Assert(t, config != nil, "config should have been created for a file sink")
	assert.Equal(t, config.Level.Level(), zapcore.InfoLevel)

	SetLevelFromName("debug")
	assert.Equal(t, config.Level.Level(), zapcore.DebugLevel)
	// unknown names leave the level untouched
	SetLevelFromName("chatty")
	assert.Equal(t, config.Level.Level(), zapcore.DebugLevel)
}

// Since we test the function IsDebugEnabled() we set the logger global var
// directly without triggering once.Do().
func TestIsDebugEnabled(t *testing.T) {
	defer resetGlobals()

	zapConfig := zap.Config{
		Level:    zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding: "console",
	}
	var err error
	logger, err = zapConfig.Build()
	assert.NilError(t, err, "debug level logger create failed")
	assert.Equal(t, true, IsDebugEnabled())

	zapConfig = zap.Config{
		Level:    zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding: "console",
	}
	logger, err = zapConfig.Build()
	assert.NilError(t, err, "info level logger create failed")
	assert.Equal(t, false, IsDebugEnabled())
}
