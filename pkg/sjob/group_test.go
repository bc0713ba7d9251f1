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

package sjob

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestCoalescePendingSiblings(t *testing.T) {
	jobs := []Job{
		{ID: "101", User: "alice", Partition: "batch", Name: "sweep", State: Pending, NodeListOrReason: "Priority"},
		{ID: "102", User: "alice", Partition: "batch", Name: "sweep", State: Pending, NodeListOrReason: "Priority"},
		{ID: "103", User: "alice", Partition: "batch", Name: "sweep", State: Pending, NodeListOrReason: "Priority"},
		{ID: "107", User: "alice", Partition: "batch", Name: "sweep", State: Pending, NodeListOrReason: "Priority"},
	}
	merged := Coalesce(jobs)
	assert.Equal(t, len(merged), 1)
	assert.Equal(t, merged[0].ID, "101-103,107")
	assert.Equal(t, merged[0].Name, "sweep (x4)")
	assert.Equal(t, merged[0].State, Pending)
	assert.Equal(t, merged[0].NodeListOrReason, "Priority")
}

func TestCoalesceRunningSiblings(t *testing.T) {
	jobs := []Job{
		{ID: "20", User: "bob", Partition: "gpu", Name: "train", State: Running,
			ElapsedSeconds: 50, NodeCount: 1, GPUCount: 4, CPUs: 8, MemoryMB: 16000, NodeListOrReason: "b0"},
		{ID: "21", User: "bob", Partition: "gpu", Name: "train", State: Running,
			ElapsedSeconds: 400, NodeCount: 1, GPUCount: 4, CPUs: 8, MemoryMB: 16000, NodeListOrReason: "b1"},
		{ID: "22", User: "bob", Partition: "gpu", Name: "train", State: Running,
			ElapsedSeconds: 90, NodeCount: 1, GPUCount: 4, CPUs: 8, MemoryMB: 16000, NodeListOrReason: "b1"},
	}
	merged := Coalesce(jobs)
	assert.Equal(t, len(merged), 1)
	assert.Equal(t, merged[0].ID, "20-22")
	assert.Equal(t, merged[0].Name, "train (x3)")
	// longest sibling sets the time, allocations add up, node lists pool
	assert.Equal(t, merged[0].ElapsedSeconds, int64(400))
	assert.Equal(t, merged[0].NodeCount, 3)
	assert.Equal(t, merged[0].GPUCount, 12)
	assert.Equal(t, merged[0].CPUs, 24)
	assert.Equal(t, merged[0].MemoryMB, 48000)
	assert.Equal(t, merged[0].NodeListOrReason, "b0,b1")
}

func TestCoalesceKeepsDifferentKeysApart(t *testing.T) {
	jobs := []Job{
		{ID: "1", User: "alice", Partition: "batch", Name: "train", State: Running},
		{ID: "2", User: "bob", Partition: "batch", Name: "train", State: Running},
		{ID: "3", User: "alice", Partition: "gpu", Name: "train", State: Running},
		{ID: "4", User: "alice", Partition: "batch", Name: "eval", State: Running},
		{ID: "5", User: "alice", Partition: "batch", Name: "train", State: Pending, NodeListOrReason: "Resources"},
	}
	merged := Coalesce(jobs)
	assert.Equal(t, len(merged), 5, "user, partition, name and state all split groups")
	for i, job := range jobs {
		assert.Equal(t, merged[i].ID, job.ID)
		assert.Equal(t, merged[i].Name, job.Name)
	}
}

func TestCoalesceSkipsTerminalStates(t *testing.T) {
	jobs := []Job{
		{ID: "8", User: "carol", Partition: "batch", Name: "etl", State: Failed},
		{ID: "9", User: "carol", Partition: "batch", Name: "etl", State: Failed},
	}
	merged := Coalesce(jobs)
	assert.Equal(t, len(merged), 2, "terminal states stay one row per job")
}

func TestCoalesceKeepsRowOrder(t *testing.T) {
	jobs := []Job{
		{ID: "30", User: "alice", Partition: "batch", Name: "a", State: Running},
		{ID: "31", User: "bob", Partition: "batch", Name: "b", State: Running},
		{ID: "32", User: "alice", Partition: "batch", Name: "a", State: Running},
	}
	merged := Coalesce(jobs)
	assert.Equal(t, len(merged), 2)
	assert.Equal(t, merged[0].ID, "30,32")
	assert.Equal(t, merged[1].ID, "31", "merged row keeps the first sibling's slot")
}

func TestCompactIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"single", []string{"7"}, "7"},
		{"contiguous", []string{"101", "102", "103"}, "101-103"},
		{"unordered with gap", []string{"103", "101", "102", "107"}, "101-103,107"},
		{"pair is a range", []string{"5", "6"}, "5-6"},
		{"array job ids stay verbatim", []string{"99_1", "99_2"}, "99_1,99_2"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, compactIDs(test.ids), test.want)
		})
	}
}
