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
	"sort"

	"github.com/sltools/sltop/pkg/snode"
)

var nodeFieldPaths = map[string][]string{
	"name":         {"name", "hostname"},
	"cpus":         {"cpus"},
	"memory":       {"real_memory"},
	"gres":         {"gres"},
	"architecture": {"architecture"},
	"state":        {"state"},
}

// ParseNodes turns raw "scontrol show nodes --json" output into the node
// list, sorted by name. The same schema drift rules apply as for the job
// parser; a node without a name is skipped silently since the usage
// section cannot display it anyway.
func ParseNodes(raw []byte) ([]snode.Node, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	entries, ok := doc["nodes"].([]interface{})
	if !ok {
		return nil, nil
	}

	nodes := make([]snode.Node, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		name, ok := nodeString(entry, "name")
		if !ok || name == "" {
			continue
		}
		node := snode.Node{Name: name}
		if n, ok := nodeInt(entry, "cpus"); ok {
			node.CPUs = int(n)
		}
		if n, ok := nodeInt(entry, "memory"); ok {
			node.MemoryMB = int(n)
		}
		if gres, ok := nodeString(entry, "gres"); ok {
			node.GPUs = snode.ParseGresGPUs(gres)
		}
		node.Architecture, _ = nodeString(entry, "architecture")
		node.State, _ = nodeString(entry, "state")
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes, nil
}

func nodeString(entry map[string]interface{}, field string) (string, bool) {
	v, ok := lookup(entry, nodeFieldPaths[field])
	if !ok {
		return "", false
	}
	return asString(v)
}

func nodeInt(entry map[string]interface{}, field string) (int64, bool) {
	v, ok := lookup(entry, nodeFieldPaths[field])
	if !ok {
		return 0, false
	}
	return asInt(v)
}
