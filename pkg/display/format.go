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

package display

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sltools/sltop/pkg/sjob"
)

const ellipsis = "…"

// FormatElapsed renders seconds the way squeue's TIME column does:
// "M:SS" below an hour, "H:MM:SS" below a day, "D-HH:MM:SS" beyond.
// Total: any input, including negative garbage, yields a string.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	seconds -= days * 86400
	hours := seconds / 3600
	seconds -= hours * 3600
	minutes := seconds / 60
	seconds -= minutes * 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	}
}

// TruncateName fits a job name into maxWidth terminal cells, marking the
// cut with an ellipsis. Wide runes count per cell. Never fails: an empty
// name or a non-positive width yields an empty string.
func TruncateName(name string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(name) <= maxWidth {
		return name
	}
	return runewidth.Truncate(name, maxWidth, ellipsis)
}

// FormatResourceTag is the short GPU tag for the resources column, empty
// when the job requested none.
func FormatResourceTag(nodeCount, gpuCount int) string {
	if gpuCount <= 0 {
		return ""
	}
	return fmt.Sprintf("gpu:%d", gpuCount)
}

// FormatResources builds the RESOURCES cell: the pending reason in
// parentheses for queued jobs, otherwise the node list with the GPU tag,
// e.g. "b0 [gpu:4]".
func FormatResources(job sjob.Job) string {
	if job.State == sjob.Pending {
		reason := job.NodeListOrReason
		if reason == "" || reason == "None" {
			return ""
		}
		return "(" + reason + ")"
	}
	tag := FormatResourceTag(job.NodeCount, job.GPUCount)
	if tag == "" {
		return job.NodeListOrReason
	}
	if job.NodeListOrReason == "" {
		return "[" + tag + "]"
	}
	return job.NodeListOrReason + " [" + tag + "]"
}

// padRight and padLeft pad plain (unstyled) cells to a fixed number of
// terminal cells. Styling happens after padding so escape sequences never
// enter the width math.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func padLeft(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
