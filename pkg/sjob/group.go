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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Coalesce folds sibling jobs into one display row. Siblings share user,
// partition, name and state; only pending and running jobs merge, jobs in
// a terminal state keep one row each. A merged row sits where its first
// sibling sat, so coalescing a sorted slice keeps the sort. It carries
// the compacted id list, a sibling count on the name, the longest elapsed
// time and the summed allocation; running siblings pool their node lists.
func Coalesce(jobs []Job) []Job {
	type group struct {
		row   int
		ids   []string
		nodes []string
	}
	merged := make([]Job, 0, len(jobs))
	groups := make(map[string]*group)

	for _, job := range jobs {
		if job.State != Pending && job.State != Running {
			merged = append(merged, job)
			continue
		}
		key := strings.Join([]string{job.User, job.Partition, job.Name, job.State.String()}, "\x00")
		g, ok := groups[key]
		if !ok {
			g = &group{row: len(merged), ids: []string{job.ID}}
			if job.State == Running && job.NodeListOrReason != "" {
				g.nodes = append(g.nodes, job.NodeListOrReason)
			}
			groups[key] = g
			merged = append(merged, job)
			continue
		}
		g.ids = append(g.ids, job.ID)
		if job.State == Running && job.NodeListOrReason != "" {
			g.nodes = append(g.nodes, job.NodeListOrReason)
		}
		row := &merged[g.row]
		if job.ElapsedSeconds > row.ElapsedSeconds {
			row.ElapsedSeconds = job.ElapsedSeconds
		}
		row.NodeCount += job.NodeCount
		row.GPUCount += job.GPUCount
		row.CPUs += job.CPUs
		row.MemoryMB += job.MemoryMB
	}

	for _, g := range groups {
		if len(g.ids) < 2 {
			continue
		}
		row := &merged[g.row]
		row.ID = compactIDs(g.ids)
		row.Name = fmt.Sprintf("%s (x%d)", row.Name, len(g.ids))
		if row.State == Running {
			row.NodeListOrReason = strings.Join(dedup(g.nodes), ",")
		}
	}
	return merged
}

// compactIDs folds plain numeric ids into ranges, "101-103,107". A single
// non-numeric id (array jobs) makes the whole list verbatim.
func compactIDs(ids []string) string {
	nums := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return strings.Join(ids, ",")
		}
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	var parts []string
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.FormatInt(nums[i], 10))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", nums[i], nums[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
