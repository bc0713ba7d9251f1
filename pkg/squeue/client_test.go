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

package squeue

import (
	"context"
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

// fakeTool drops an executable shell script standing in for squeue.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts required")
	}
	file := path.Join(t.TempDir(), "squeue")
	assert.NilError(t, os.WriteFile(file, []byte("#!/bin/sh\n"+script+"\n"), 0700))
	return file
}

func TestRunMapsNonZeroExit(t *testing.T) {
	tool := fakeTool(t, "echo boom >&2; exit 3")
	c := &Client{squeuePath: tool, timeout: time.Second}
	_, err := c.run(context.Background(), tool)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.ErrorContains(t, err, "boom")
}

func TestRunMissingBinary(t *testing.T) {
	c := &Client{timeout: time.Second}
	_, err := c.run(context.Background(), "/nonexistent/squeue")
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestFetchNodesWithoutScontrol(t *testing.T) {
	c := &Client{squeuePath: "squeue", timeout: time.Second}
	_, err := c.FetchNodes(context.Background())
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestVersion(t *testing.T) {
	tool := fakeTool(t, `echo "slurm-wlm 23.11.4"`)
	c := &Client{squeuePath: tool, timeout: time.Second}
	assert.Equal(t, c.Version(), "23.11.4")
}

func TestVersionUnexpectedOutput(t *testing.T) {
	tool := fakeTool(t, `echo "23.11.4"`)
	c := &Client{squeuePath: tool, timeout: time.Second}
	assert.Equal(t, c.Version(), "23.11.4")
}

func TestVersionFailure(t *testing.T) {
	tool := fakeTool(t, "exit 1")
	c := &Client{squeuePath: tool, timeout: time.Second}
	assert.Equal(t, c.Version(), "unknown")
}
