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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sltools/sltop/pkg/sjob"
)

// The squeue --json schema keeps shifting between slurm releases: scalars
// grow {"set","number"} wrappers, the state becomes an array, keys get
// renamed. Each logical field therefore carries an ordered list of
// candidate paths, tried until one resolves. Dots descend into nested
// objects.
var fieldPaths = map[string][]string{
	"id":        {"job_id"},
	"partition": {"partition"},
	"name":      {"name", "job_name"},
	"user":      {"user_name", "user", "account"},
	"state":     {"job_state", "state.current"},
	"elapsed":   {"time.elapsed", "elapsed_time", "run_time"},
	"start":     {"start_time"},
	"nodeCount": {"node_count", "job_resources.nodes.count"},
	"nodes":     {"nodes", "job_resources.nodes.list", "job_resources.nodes"},
	"reason":    {"state_reason", "state_description"},
	"tres":      {"tres_per_node", "tres_per_job", "gres_detail"},
	"cpus":      {"cpus", "cpus_per_task"},
	"memory":    {"memory_per_node", "min_memory_per_node"},
}

// overridable in tests, elapsed time may be derived from start_time
var nowFunc = time.Now

// Parse turns raw squeue --json output into job records in document order.
// Entries missing a required field (id, user, state) are dropped with a
// warning; optional fields fall back to zero values. Only a document that
// does not parse as JSON at all fails the call, with ErrMalformedOutput.
func Parse(raw []byte) ([]sjob.Job, []string, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	entries, ok := doc["jobs"].([]interface{})
	if !ok {
		// an empty or filtered queue may omit the key entirely
		if _, present := doc["jobs"]; present {
			return nil, nil, fmt.Errorf("%w: jobs is not a list", ErrMalformedOutput)
		}
		return nil, nil, nil
	}

	jobs := make([]sjob.Job, 0, len(entries))
	var warnings []string
	for i, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			warnings = append(warnings, fmt.Sprintf("entry %d: not an object", i))
			continue
		}
		job, warn := parseEntry(entry)
		if warn != "" {
			warnings = append(warnings, warn)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, warnings, nil
}

func parseEntry(entry map[string]interface{}) (sjob.Job, string) {
	id, hasID := lookupString(entry, "id")
	user, hasUser := lookupString(entry, "user")
	state, hasState := lookupString(entry, "state")
	if !hasID || !hasUser || !hasState {
		ref := id
		if ref == "" {
			ref = "<no id>"
		}
		return sjob.Job{}, fmt.Sprintf("entry %s: missing required field (id/user/state)", ref)
	}

	job := sjob.Job{
		ID:    id,
		User:  user,
		State: sjob.ParseState(state),
	}
	job.Partition, _ = lookupString(entry, "partition")
	job.Name, _ = lookupString(entry, "name")

	if n, ok := lookupInt(entry, "nodeCount"); ok {
		job.NodeCount = int(n)
	}
	if n, ok := lookupInt(entry, "cpus"); ok {
		job.CPUs = int(n)
	}
	if n, ok := lookupInt(entry, "memory"); ok {
		job.MemoryMB = int(n)
	}
	if tres, ok := lookupString(entry, "tres"); ok {
		job.GPUCount = parseTRESGPUs(tres)
	}
	job.ElapsedSeconds = parseElapsedEntry(entry, job.State)

	if job.State == sjob.Pending {
		reason, _ := lookupString(entry, "reason")
		job.NodeListOrReason = reason
	} else {
		job.NodeListOrReason, _ = lookupString(entry, "nodes")
	}
	return job, ""
}

func parseElapsedEntry(entry map[string]interface{}, state sjob.State) int64 {
	if v, ok := lookup(entry, fieldPaths["elapsed"]); ok {
		switch elapsed := v.(type) {
		case string:
			return ParseElapsed(elapsed)
		default:
			if n, ok := asInt(v); ok && n >= 0 {
				return n
			}
		}
	}
	// older schemas only report the start timestamp
	if state == sjob.Running {
		if start, ok := lookupInt(entry, "start"); ok && start > 0 {
			if diff := nowFunc().Unix() - start; diff > 0 {
				return diff
			}
		}
	}
	return 0
}

// ParseElapsed normalizes a slurm duration display string to seconds.
// Accepted forms: "D-HH:MM:SS", "HH:MM:SS", "MM:SS" and a bare number of
// seconds. Anything else, including "INVALID" and "UNLIMITED", is zero.
func ParseElapsed(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	var days int64
	if d, rest, found := strings.Cut(raw, "-"); found {
		n, err := strconv.ParseInt(d, 10, 64)
		if err != nil {
			return 0
		}
		days = n
		raw = rest
	}
	parts := strings.Split(raw, ":")
	if len(parts) == 1 && days == 0 {
		if n, err := strconv.ParseInt(parts[0], 10, 64); err == nil && n >= 0 {
			return n
		}
		return 0
	}
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return days*86400 + total
}

// parseTRESGPUs extracts the GPU count from a per-node TRES request like
// "gres/gpu:4" or "gres/gpu:a100:8". The first gpu-typed token wins,
// malformed counts contribute zero.
func parseTRESGPUs(tres string) int {
	for _, token := range strings.Split(tres, ",") {
		token = strings.TrimSpace(token)
		token = strings.TrimPrefix(token, "gres/")
		// gres_detail carries an index suffix like "gpu:4(IDX:0-3)"
		if open := strings.Index(token, "("); open >= 0 {
			token = token[:open]
		}
		if token != "gpu" && !strings.HasPrefix(token, "gpu:") {
			continue
		}
		fields := strings.Split(token, ":")
		if len(fields) < 2 {
			return 0
		}
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return 0
}

// ---- tolerant value lookup ----

func lookup(entry map[string]interface{}, paths []string) (interface{}, bool) {
	for _, path := range paths {
		v, ok := dig(entry, strings.Split(path, "."))
		if ok {
			return v, true
		}
	}
	return nil, false
}

func dig(node interface{}, keys []string) (interface{}, bool) {
	for _, key := range keys {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func lookupString(entry map[string]interface{}, field string) (string, bool) {
	v, ok := lookup(entry, fieldPaths[field])
	if !ok {
		return "", false
	}
	return asString(v)
}

func lookupInt(entry map[string]interface{}, field string) (int64, bool) {
	v, ok := lookup(entry, fieldPaths[field])
	if !ok {
		return 0, false
	}
	return asInt(v)
}

// asString accepts plain strings, the first element of a string list
// (job_state since slurm 23.02) and bare numbers (job_id).
func asString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []interface{}:
		if len(val) == 0 {
			return "", false
		}
		return asString(val[0])
	case float64:
		return strconv.FormatInt(int64(val), 10), true
	}
	return "", false
}

// asInt accepts bare numbers, numeric strings and the {"set","number"}
// wrapper newer slurm versions emit. A wrapper with set=false counts as
// absent.
func asInt(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case float64:
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case map[string]interface{}:
		if set, ok := val["set"].(bool); ok && !set {
			return 0, false
		}
		if number, ok := val["number"].(float64); ok {
			return int64(number), true
		}
	}
	return 0, false
}
