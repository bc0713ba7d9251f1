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
	"fmt"
	"strconv"
	"strings"
)

// ExpandNodeList expands a slurm compressed hostlist expression into the
// individual node names, e.g. "b[0-2,7],c1" -> b0 b1 b2 b7 c1. Malformed
// expressions yield whatever could be expanded, never an error: the list
// is only used for usage accounting.
func ExpandNodeList(expr string) []string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	var names []string
	for _, group := range splitTopLevel(expr) {
		open := strings.Index(group, "[")
		if open < 0 || !strings.HasSuffix(group, "]") {
			names = append(names, group)
			continue
		}
		prefix := group[:open]
		ranges := group[open+1 : len(group)-1]
		for _, r := range strings.Split(ranges, ",") {
			names = append(names, expandRange(prefix, r)...)
		}
	}
	return names
}

// splitTopLevel splits on commas that are not inside brackets.
func splitTopLevel(expr string) []string {
	var groups []string
	depth, start := 0, 0
	for i, c := range expr {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				groups = append(groups, expr[start:i])
				start = i + 1
			}
		}
	}
	return append(groups, expr[start:])
}

func expandRange(prefix, r string) []string {
	lo, hi, found := strings.Cut(r, "-")
	if !found {
		return []string{prefix + lo}
	}
	start, errLo := strconv.Atoi(lo)
	end, errHi := strconv.Atoi(hi)
	if errLo != nil || errHi != nil || end < start {
		return []string{prefix + r}
	}
	width := len(lo)
	names := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		names = append(names, fmt.Sprintf("%s%0*d", prefix, width, i))
	}
	return names
}
