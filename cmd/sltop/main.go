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

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sltools/sltop/pkg/configs"
	"github.com/sltools/sltop/pkg/log"
	"github.com/sltools/sltop/pkg/monitor"
	"github.com/sltools/sltop/pkg/squeue"
)

var buildVersion = "0.3.0"

var (
	flagConfig  string
	flagRefresh float64
	flagWidth   int
	flagSort    string
	flagNoMerge bool
	flagNoNodes bool
)

var rootCmd = &cobra.Command{
	Use:     "sltop",
	Short:   "A top-like queue viewer for Slurm",
	Long:    `sltop polls squeue and redraws a live table of the job queue: id, partition, owner, state, runtime and placement, plus per-node resource usage.`,
	Version: buildVersion,
	RunE:    run,
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to the YAML config file (default "+configs.DefaultConfigPath+")")
	rootCmd.Flags().Float64VarP(&flagRefresh, "refresh", "r", 0, "refresh rate in seconds")
	rootCmd.Flags().IntVar(&flagWidth, "max-name-width", 0, "width of the NAME column")
	rootCmd.Flags().StringVarP(&flagSort, "sort", "s", "", "job order: source-order, by-id, by-state, by-elapsed or grouped")
	rootCmd.Flags().BoolVar(&flagNoMerge, "no-merge", false, "show every job on its own row instead of merging siblings")
	rootCmd.Flags().BoolVar(&flagNoNodes, "no-nodes", false, "hide the node usage section")
}

func run(cmd *cobra.Command, _ []string) error {
	conf, err := configs.LoadConfigFromFile(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("refresh") {
		conf.RefreshSeconds = flagRefresh
	}
	if cmd.Flags().Changed("max-name-width") {
		conf.MaxNameWidth = flagWidth
	}
	if cmd.Flags().Changed("sort") {
		conf.SortPolicy = flagSort
	}
	if flagNoMerge {
		conf.Merge = false
	}
	if flagNoNodes {
		conf.ShowNodes = false
	}
	if err = conf.Validate(); err != nil {
		return err
	}
	log.SetLevelFromName(conf.LogLevel)

	logger := log.Logger().With(zap.String("run", uuid.NewString()))
	logger.Info("starting sltop",
		zap.String("version", buildVersion),
		zap.Float64("refreshSeconds", conf.RefreshSeconds))

	// any failure past this point is recoverable; a missing squeue is not,
	// so it must fail before the display session opens
	client, err := squeue.NewClient()
	if err != nil {
		return err
	}
	version := client.Version()

	model := monitor.New(client, conf, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("display error: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sltop:", err)
		os.Exit(1)
	}
}
