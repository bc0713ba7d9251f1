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
	"github.com/charmbracelet/lipgloss"

	"github.com/sltools/sltop/pkg/sjob"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	colHeadStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	partStyle    = lipgloss.NewStyle().Faint(true)
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bannerStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Bold(true).
			Padding(0, 1)

	gpuBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cpuBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	memBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	barRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStatStyle = lipgloss.NewStyle().Faint(true)

	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	runningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	completingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	suspendedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	cancelledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	failedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	timeoutStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	preemptedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	nodeFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	unknownStyle    = lipgloss.NewStyle().Faint(true).Bold(true)
)

// StateStyle maps every job state onto its row accent style. The mapping
// is exhaustive over the enum; states slurm invents later land on the
// Unknown fallback instead of breaking the renderer.
func StateStyle(state sjob.State) lipgloss.Style {
	switch state {
	case sjob.Pending:
		return pendingStyle
	case sjob.Running:
		return runningStyle
	case sjob.Completing:
		return completingStyle
	case sjob.Suspended:
		return suspendedStyle
	case sjob.Completed:
		return completedStyle
	case sjob.Cancelled:
		return cancelledStyle
	case sjob.Failed:
		return failedStyle
	case sjob.Timeout:
		return timeoutStyle
	case sjob.Preempted:
		return preemptedStyle
	case sjob.NodeFail:
		return nodeFailStyle
	default:
		return unknownStyle
	}
}
