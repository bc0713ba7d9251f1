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

package snode

import (
	"regexp"
	"strconv"
	"strings"
)

// Node is one cluster node as reported by scontrol.
type Node struct {
	Name         string
	CPUs         int
	MemoryMB     int
	GPUs         int
	Architecture string
	State        string
}

var gresParens = regexp.MustCompile(`\(.*?\)`)

// ParseGresGPUs extracts the total GPU count from a node GRES string.
// Expected entries look like "gpu:4", "gpu:a100:8" or carry an index
// suffix like "gpu:4(S:0-1)". Anything unparsable contributes zero.
func ParseGresGPUs(gres string) int {
	if gres == "" || !strings.Contains(gres, "gpu") {
		return 0
	}
	count := 0
	for _, part := range strings.Split(gres, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "gpu") {
			continue
		}
		part = gresParens.ReplaceAllString(part, "")
		fields := strings.Split(part, ":")
		if len(fields) < 2 {
			continue
		}
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			count += n
		}
	}
	return count
}
