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
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sltools/sltop/pkg/sjob"
	"github.com/sltools/sltop/pkg/snode"
)

// fixed column widths, name and resources absorb the rest
const (
	idWidth    = 8
	partWidth  = 9
	userWidth  = 10
	stateWidth = 2
	timeWidth  = 11
	nodesWidth = 5

	nodeNameWidth = 10
	barStatWidth  = 12
	minBarWidth   = 4
)

// Options is the resolved display configuration for one render pass.
type Options struct {
	// Width is the terminal width, every emitted line is clipped to it.
	Width        int
	MaxNameWidth int
	Sort         sjob.SortPolicy
	// Merge folds sibling jobs (same user, partition, name and state)
	// into one row after sorting.
	Merge     bool
	ShowNodes bool
}

// Render produces the full frame: header with version and clock, the
// optional node usage section and the job table. The output depends only
// on the arguments, rendering the same snapshot twice gives identical
// bytes. An empty job list still yields the table header.
func Render(jobs []sjob.Job, nodes []snode.Node, usage map[string]snode.Usage, version string, now time.Time, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.MaxNameWidth <= 0 {
		opts.MaxNameWidth = 24
	}

	var lines []string
	lines = append(lines, renderHeader(version, now, opts.Width))
	lines = append(lines, rule(opts.Width))
	if opts.ShowNodes && len(nodes) > 0 {
		lines = append(lines, renderNodeSection(nodes, usage, opts.Width)...)
		lines = append(lines, rule(opts.Width))
	}
	rows := opts.Sort.Apply(jobs)
	if opts.Merge {
		rows = sjob.Coalesce(rows)
	}
	lines = append(lines, renderJobTable(rows, opts)...)

	for i, line := range lines {
		lines[i] = truncate.String(line, uint(opts.Width))
	}
	return strings.Join(lines, "\n")
}

// BannerLine renders the persistent error banner shown above the table
// while the scheduler is unreachable or returns garbage.
func BannerLine(msg string, width int) string {
	if width <= 0 {
		width = 80
	}
	return truncate.String(bannerStyle.Render("slurm unavailable: "+msg), uint(width))
}

func renderHeader(version string, now time.Time, width int) string {
	left := headerStyle.Render("sltop/slurm v" + version)
	right := headerStyle.Render(now.Format("2006-01-02 15:04:05"))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func rule(width int) string {
	return ruleStyle.Render(strings.Repeat("─", width))
}

func renderJobTable(jobs []sjob.Job, opts Options) []string {
	nameWidth := opts.MaxNameWidth
	// merged sibling rows carry an id list wider than a plain job id
	idW := idWidth
	for _, job := range jobs {
		if len(job.ID) > idW {
			idW = len(job.ID)
		}
	}
	head := strings.Join([]string{
		padLeft("ID", idW),
		padRight("PART", partWidth),
		padRight("USER", userWidth),
		padRight("NAME", nameWidth),
		padRight("ST", stateWidth),
		padLeft("TIME", timeWidth),
		padLeft("NODES", nodesWidth),
		"RESOURCES",
	}, " ")
	lines := []string{colHeadStyle.Render(head)}

	for _, job := range jobs {
		elapsed := "-"
		if job.State == sjob.Running || job.State == sjob.Completing || job.ElapsedSeconds > 0 {
			elapsed = FormatElapsed(job.ElapsedSeconds)
		}
		cells := []string{
			idStyle.Render(padLeft(job.ID, idW)),
			partStyle.Render(padRight(job.Partition, partWidth)),
			userStyle.Render(padRight(truncateCell(job.User, userWidth), userWidth)),
			padRight(TruncateName(job.Name, nameWidth), nameWidth),
			StateStyle(job.State).Render(padRight(job.State.Code(), stateWidth)),
			padLeft(elapsed, timeWidth),
			padLeft(strconv.Itoa(job.NodeCount), nodesWidth),
			FormatResources(job),
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func renderNodeSection(nodes []snode.Node, usage map[string]snode.Usage, width int) []string {
	barWidth := (width - nodeNameWidth - 3*barStatWidth - 6) / 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := make([]string, 0, len(nodes))
	for _, node := range nodes {
		u := usage[node.Name]
		cells := []string{
			headerStyle.Render(padRight(truncateCell(node.Name, nodeNameWidth), nodeNameWidth)),
			renderBar("GPU", u.GPUs, node.GPUs, barWidth, gpuBarStyle, ""),
			renderBar("CPU", u.CPUs, node.CPUs, barWidth, cpuBarStyle, ""),
			renderBar("MEM", u.MemoryMB/1000, node.MemoryMB/1000, barWidth, memBarStyle, "G"),
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// renderBar draws "GPU ████░░░░ 4/8" style usage cells.
func renderBar(label string, used, total, barWidth int, style lipgloss.Style, unit string) string {
	filled := 0
	if total > 0 {
		filled = used * barWidth / total
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := style.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", barWidth-filled))
	stats := barStatStyle.Render(padRight(fmt.Sprintf("%d/%d%s", used, total, unit), barStatWidth-len(label)-1))
	return barStatStyle.Render(label) + " " + bar + " " + stats
}

func truncateCell(s string, width int) string {
	return TruncateName(s, width)
}
