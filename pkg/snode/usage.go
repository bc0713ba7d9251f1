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

import "github.com/sltools/sltop/pkg/sjob"

// Usage is the per-node share of resources held by running jobs.
type Usage struct {
	CPUs     int
	GPUs     int
	MemoryMB int
}

// CalculateUsage distributes the allocations of all running jobs over the
// nodes they occupy. GPU counts come from the job's per-node TRES request;
// CPUs and memory are totals and get divided evenly across the job's
// nodes, which is how slurm places symmetric allocations.
func CalculateUsage(nodes []Node, jobs []sjob.Job) map[string]Usage {
	usage := make(map[string]Usage, len(nodes))
	for _, n := range nodes {
		usage[n.Name] = Usage{}
	}

	for _, job := range jobs {
		if job.State != sjob.Running {
			continue
		}
		names := ExpandNodeList(job.NodeListOrReason)
		if len(names) == 0 {
			continue
		}
		cpus := job.CPUs / len(names)
		mem := job.MemoryMB / len(names)

		for _, name := range names {
			u, tracked := usage[name]
			if !tracked {
				continue
			}
			u.GPUs += job.GPUCount
			u.CPUs += cpus
			u.MemoryMB += mem
			usage[name] = u
		}
	}
	return usage
}
