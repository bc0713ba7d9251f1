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

package monitor

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/sltools/sltop/pkg/configs"
	"github.com/sltools/sltop/pkg/display"
	"github.com/sltools/sltop/pkg/log"
	"github.com/sltools/sltop/pkg/sjob"
	"github.com/sltools/sltop/pkg/snode"
	"github.com/sltools/sltop/pkg/squeue"
)

type tickMsg time.Time

type queueMsg struct {
	jobs     []sjob.Job
	warnings []string
	at       time.Time
}

type nodesMsg []snode.Node

type queryErrMsg struct{ err error }

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// queryClient is the scheduler boundary as the monitor sees it: bytes or
// a typed failure. Satisfied by squeue.Client, replaced in tests.
type queryClient interface {
	FetchQueue(ctx context.Context) ([]byte, error)
	FetchNodes(ctx context.Context) ([]byte, error)
}

// Model is the bubbletea model driving the live display. One poll cycle
// per tick: query, parse, render, wait. All cycle errors terminate in the
// banner, never in the program exiting.
type Model struct {
	client  queryClient
	refresh time.Duration
	opts    display.Options
	version string

	jobs   []sjob.Job
	nodes  []snode.Node
	usage  map[string]snode.Usage
	banner string
	now    time.Time

	width  int
	height int

	cycle   *fsm.FSM
	help    help.Model
	warnLog *log.RateLimitedLogger
}

func New(client queryClient, conf *configs.Config, version string) Model {
	return Model{
		client:  client,
		refresh: time.Duration(conf.RefreshSeconds * float64(time.Second)),
		opts: display.Options{
			MaxNameWidth: conf.MaxNameWidth,
			Sort:         conf.Sort(),
			Merge:        conf.Merge,
			ShowNodes:    conf.ShowNodes,
		},
		version: version,
		now:     time.Now(),
		cycle:   newCycleState(),
		help:    help.New(),
		warnLog: log.RateLimitedLog(30 * time.Second),
	}
}

func (m Model) Init() tea.Cmd {
	m.transition(Query)
	cmds := []tea.Cmd{initialWindowSizeCmd(), m.fetchQueueCmd(), m.tickCmd()}
	if m.opts.ShowNodes {
		cmds = append(cmds, m.fetchNodesCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.transition(Stop)
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		// a slow query can outlast the refresh interval; let the
		// in-flight fetch finish and reschedule instead of stacking a
		// second one
		if m.cycle.Current() == Querying.String() {
			return m, m.tickCmd()
		}
		m.transition(Query)
		cmds := []tea.Cmd{m.fetchQueueCmd(), m.tickCmd()}
		if m.opts.ShowNodes {
			cmds = append(cmds, m.fetchNodesCmd())
		}
		return m, tea.Batch(cmds...)

	case queueMsg:
		m.transition(Parse)
		for _, warning := range msg.warnings {
			m.warnLog.Warn("dropped job entry", zap.String("warning", warning))
		}
		m.jobs = msg.jobs
		m.now = msg.at
		m.banner = ""
		m.usage = snode.CalculateUsage(m.nodes, m.jobs)
		m.transition(Draw)
		m.transition(Wait)
		return m, nil

	case nodesMsg:
		m.nodes = msg
		m.usage = snode.CalculateUsage(m.nodes, m.jobs)
		return m, nil

	case queryErrMsg:
		// recoverable: show the banner over the previous table and keep
		// polling at the same cadence
		m.banner = msg.err.Error()
		m.now = time.Now()
		m.transition(Draw)
		m.transition(Wait)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	out := ""
	if m.banner != "" {
		out = display.BannerLine(m.banner, m.width) + "\n"
	}
	opts := m.opts
	opts.Width = m.width
	out += display.Render(m.jobs, m.nodes, m.usage, m.version, m.now, opts)
	return out + "\n" + m.help.View(keys)
}

// transition fires a cycle event. An invalid transition is a programming
// error, it gets logged and the display keeps running.
func (m Model) transition(event cycleEvent) {
	if err := m.cycle.Event(context.Background(), event.String()); err != nil {
		log.Logger().Error("cycle state machine", zap.Error(err))
	}
}

// initialWindowSizeCmd probes the terminal before the first WindowSizeMsg
// arrives so the first frame is not rendered at zero width.
func initialWindowSizeCmd() tea.Cmd {
	return func() tea.Msg {
		width, height, err := term.GetSize(os.Stdout.Fd())
		if err != nil || width <= 0 || height <= 0 {
			return tea.WindowSizeMsg{Width: 80, Height: 24}
		}
		return tea.WindowSizeMsg{Width: width, Height: height}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchQueueCmd() tea.Cmd {
	return func() tea.Msg {
		raw, err := m.client.FetchQueue(context.Background())
		if err != nil {
			return queryErrMsg{err: err}
		}
		jobs, warnings, err := squeue.Parse(raw)
		if err != nil {
			return queryErrMsg{err: err}
		}
		return queueMsg{jobs: jobs, warnings: warnings, at: time.Now()}
	}
}

func (m Model) fetchNodesCmd() tea.Cmd {
	return func() tea.Msg {
		raw, err := m.client.FetchNodes(context.Background())
		if err != nil {
			// the node section is optional, degrade to the jobs-only view
			log.Logger().Debug("node query failed", zap.Error(err))
			return nodesMsg(nil)
		}
		nodes, err := squeue.ParseNodes(raw)
		if err != nil {
			log.Logger().Debug("node output unparsable", zap.Error(err))
			return nodesMsg(nil)
		}
		return nodesMsg(nodes)
	}
}
