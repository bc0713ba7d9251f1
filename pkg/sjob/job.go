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

import "strings"

// State is the scheduler classification of a job. The set is closed on our
// side: anything squeue reports outside the known values maps to Unknown so
// newer slurm releases cannot break rendering.
type State int

const (
	Pending State = iota
	Running
	Completing
	Suspended
	Completed
	Cancelled
	Failed
	Timeout
	Preempted
	NodeFail
	Unknown
)

func (s State) String() string {
	if s < Pending || s > Unknown {
		return "UNKNOWN"
	}
	return [...]string{
		"PENDING",
		"RUNNING",
		"COMPLETING",
		"SUSPENDED",
		"COMPLETED",
		"CANCELLED",
		"FAILED",
		"TIMEOUT",
		"PREEMPTED",
		"NODE_FAIL",
		"UNKNOWN",
	}[s]
}

// Code returns the short state column value, matching the codes squeue
// itself prints (R, PD, CG, ...).
func (s State) Code() string {
	switch s {
	case Pending:
		return "PD"
	case Running:
		return "R"
	case Completing:
		return "CG"
	case Suspended:
		return "S"
	case Completed:
		return "CD"
	case Cancelled:
		return "CA"
	case Failed:
		return "F"
	case Timeout:
		return "TO"
	case Preempted:
		return "PR"
	case NodeFail:
		return "NF"
	default:
		return "??"
	}
}

// ParseState maps the squeue state string onto the closed enum.
// Unrecognized values, including states added by future slurm versions,
// come back as Unknown.
func ParseState(raw string) State {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return Pending
	case "RUNNING":
		return Running
	case "COMPLETING":
		return Completing
	case "SUSPENDED":
		return Suspended
	case "COMPLETED":
		return Completed
	case "CANCELLED":
		return Cancelled
	case "FAILED":
		return Failed
	case "TIMEOUT":
		return Timeout
	case "PREEMPTED":
		return Preempted
	case "NODE_FAIL":
		return NodeFail
	default:
		return Unknown
	}
}

// Job is one squeue entry. A full set of records is built fresh on every
// poll cycle and discarded after rendering, nothing is mutated in place.
type Job struct {
	ID        string
	Partition string
	Name      string
	User      string
	State     State
	// ElapsedSeconds is the time spent in the current run, zero for jobs
	// that have not started.
	ElapsedSeconds int64
	NodeCount      int
	GPUCount       int
	// NodeListOrReason holds the allocated node names for running jobs or
	// the pending reason (Dependency, Resources, ...) for queued ones.
	NodeListOrReason string
	// CPUs and MemoryMB are the total allocation across all nodes, used by
	// the node usage section. Zero when squeue does not report them.
	CPUs     int
	MemoryMB int
}
