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

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/sltools/sltop/pkg/log"
)

// ----------------------------------
// cycle events
// these drive one poll-parse-render pass of the monitor
// ----------------------------------
type cycleEvent int

const (
	Query cycleEvent = iota
	Parse
	Draw
	Wait
	Stop
)

func (ce cycleEvent) String() string {
	return [...]string{"Query", "Parse", "Draw", "Wait", "Stop"}[ce]
}

// ----------------------------------
// cycle states
// ----------------------------------
type cycleState int

const (
	Idle cycleState = iota
	Querying
	Parsing
	Rendering
	Waiting
	Stopped
)

func (cs cycleState) String() string {
	return [...]string{"Idle", "Querying", "Parsing", "Rendering", "Waiting", "Stopped"}[cs]
}

// newCycleState builds the refresh loop state machine. A failed query
// skips the Parsing state, the error banner is rendered straight from
// Querying. Stop is accepted everywhere so an interrupt never races the
// in-flight cycle.
func newCycleState() *fsm.FSM {
	return fsm.NewFSM(
		Idle.String(), fsm.Events{
			{
				Name: Query.String(),
				Src:  []string{Idle.String(), Waiting.String()},
				Dst:  Querying.String(),
			}, {
				Name: Parse.String(),
				Src:  []string{Querying.String()},
				Dst:  Parsing.String(),
			}, {
				Name: Draw.String(),
				Src:  []string{Parsing.String(), Querying.String()},
				Dst:  Rendering.String(),
			}, {
				Name: Wait.String(),
				Src:  []string{Rendering.String()},
				Dst:  Waiting.String(),
			}, {
				Name: Stop.String(),
				Src: []string{
					Idle.String(), Querying.String(), Parsing.String(),
					Rendering.String(), Waiting.String(),
				},
				Dst: Stopped.String(),
			},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, event *fsm.Event) {
				log.Logger().Debug("cycle transition",
					zap.String("source", event.Src),
					zap.String("destination", event.Dst),
					zap.String("event", event.Event))
			},
		},
	)
}
