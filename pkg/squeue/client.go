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
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sltools/sltop/pkg/log"
)

const queryTimeout = 10 * time.Second

// Client shells out to the slurm command line tools and hands the raw
// bytes to the parser. It never interprets the output itself.
type Client struct {
	squeuePath   string
	scontrolPath string
	timeout      time.Duration
}

// NewClient resolves the slurm binaries. A missing squeue is a startup
// failure, there is nothing to monitor without it. scontrol is optional,
// without it the node section is simply not shown.
func NewClient() (*Client, error) {
	squeuePath, err := exec.LookPath("squeue")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchedulerNotFound, err)
	}
	scontrolPath, err := exec.LookPath("scontrol")
	if err != nil {
		log.Logger().Info("scontrol not found, node section disabled", zap.Error(err))
		scontrolPath = ""
	}
	return &Client{
		squeuePath:   squeuePath,
		scontrolPath: scontrolPath,
		timeout:      queryTimeout,
	}, nil
}

// FetchQueue returns the raw bytes of "squeue --json".
func (c *Client) FetchQueue(ctx context.Context) ([]byte, error) {
	return c.run(ctx, c.squeuePath, "--json")
}

// FetchNodes returns the raw bytes of "scontrol show nodes --json", or a
// query failure when scontrol is not available.
func (c *Client) FetchNodes(ctx context.Context) ([]byte, error) {
	if c.scontrolPath == "" {
		return nil, fmt.Errorf("%w: scontrol not available", ErrQueryFailed)
	}
	return c.run(ctx, c.scontrolPath, "show", "nodes", "--json")
}

// Version probes the slurm version once at startup. squeue prints
// "slurm-wlm 23.11.4"; anything unexpected degrades to "unknown".
func (c *Client) Version() string {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, c.squeuePath, "--version").Output()
	if err != nil {
		log.Logger().Warn("failed to probe slurm version", zap.Error(err))
		return "unknown"
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) >= 2 {
		return fields[1]
	}
	return strings.TrimSpace(string(out))
}

func (c *Client) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s exited with %d: %s",
				ErrQueryFailed, name, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return out, nil
}
