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
)

// SortPolicy selects the display order of the job table. Sorting happens
// on a copy at render time, the parsed record set always keeps the order
// squeue returned.
type SortPolicy int

const (
	// SourceOrder keeps squeue's own ordering, which keeps dependency
	// chains visually adjacent.
	SourceOrder SortPolicy = iota
	ByID
	ByState
	ByElapsed
	// Grouped is the classic sltop order: pending first (newest id on
	// top), then running (youngest first), then everything else.
	Grouped
)

func (p SortPolicy) String() string {
	if p < SourceOrder || p > Grouped {
		return "undefined"
	}
	return [...]string{"source-order", "by-id", "by-state", "by-elapsed", "grouped"}[p]
}

func ParseSortPolicy(raw string) (SortPolicy, error) {
	switch raw {
	case SourceOrder.String(), "":
		return SourceOrder, nil
	case ByID.String():
		return ByID, nil
	case ByState.String():
		return ByState, nil
	case ByElapsed.String():
		return ByElapsed, nil
	case Grouped.String():
		return Grouped, nil
	}
	return SourceOrder, fmt.Errorf("undefined sort policy: %s", raw)
}

// Apply returns the jobs ordered by the policy. The input slice is never
// modified.
func (p SortPolicy) Apply(jobs []Job) []Job {
	sorted := make([]Job, len(jobs))
	copy(sorted, jobs)

	switch p {
	case ByID:
		sort.SliceStable(sorted, func(i, j int) bool {
			return idLess(sorted[i].ID, sorted[j].ID)
		})
	case ByState:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].State < sorted[j].State
		})
	case ByElapsed:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ElapsedSeconds > sorted[j].ElapsedSeconds
		})
	case Grouped:
		sort.SliceStable(sorted, func(i, j int) bool {
			return groupedLess(sorted[i], sorted[j])
		})
	}
	return sorted
}

func groupedLess(a, b Job) bool {
	ra, rb := groupRank(a.State), groupRank(b.State)
	if ra != rb {
		return ra < rb
	}
	if a.State == Running && b.State == Running {
		// youngest running job on top
		return a.ElapsedSeconds < b.ElapsedSeconds
	}
	// pending and everything else: newest id on top
	return idLess(b.ID, a.ID)
}

func groupRank(s State) int {
	switch s {
	case Pending:
		return 0
	case Running:
		return 1
	default:
		return 2
	}
}

// idLess compares numerically when both ids are plain integers, which they
// are for regular slurm jobs. Array job ids like "123_4" fall back to a
// string compare.
func idLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
