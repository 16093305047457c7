// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

// Package cmd implements the timelinestore commandline subcommands.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timelinestore"
)

func requireOneStore(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("requires exactly one store")
	}
	return nil
}

// Create is the timelinestore create commandline subcommand.
func Create() *cobra.Command {
	var storageType string
	createCommand := &cobra.Command{
		Use:   "create <store>",
		Short: "Create a timelinestore",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := timelinestore.New(args[0], storageType)
			if err != nil {
				return err
			}
			return store.Close()
		},
	}
	createCommand.Flags().StringVar(&storageType, "type", timelinestore.StorageTypeSession,
		"storage type (session or task)")
	return createCommand
}

// Info is the timelinestore info commandline subcommand. It prints the
// container counts per type.
func Info() *cobra.Command {
	return &cobra.Command{
		Use:   "info <store>",
		Short: "Show the container counts of a timelinestore",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			return timelinestore.WithReader(args[0], func(reader timelinestore.StorageReader) error {
				fmt.Printf("storage type: %s\n", reader.StorageType())
				for _, containerType := range timelinestore.SupportedContainerTypes() {
					count, err := reader.GetNumberOfAttributeContainers(containerType)
					if err != nil {
						return err
					}
					if count > 0 {
						fmt.Printf("%s: %d\n", containerType, count)
					}
				}
				return nil
			})
		},
	}
}

// Events is the timelinestore events commandline subcommand. It prints the
// events in chronological order, optionally filtered to [start, end).
func Events() *cobra.Command {
	var start, end int64
	eventsCommand := &cobra.Command{
		Use:   "events <store>",
		Short: "Print the sorted event timeline",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			var timeRange *timelinestore.TimeRange
			if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
				timeRange = &timelinestore.TimeRange{Start: start, End: end}
			}

			return timelinestore.WithReader(args[0], func(reader timelinestore.StorageReader) error {
				events, err := reader.GetSortedEvents(timeRange)
				if err != nil {
					return err
				}
				for {
					event, err := events.Next()
					if err != nil {
						return err
					}
					if event == nil {
						return nil
					}
					line, err := json.Marshal(timelinestore.AttributeMap(event))
					if err != nil {
						return err
					}
					fmt.Println(string(line))
				}
			})
		},
	}
	eventsCommand.Flags().Int64Var(&start, "start", 0, "start of the time range in microseconds")
	eventsCommand.Flags().Int64Var(&end, "end", 0, "end of the time range in microseconds, exclusive")
	return eventsCommand
}

// Sessions is the timelinestore sessions commandline subcommand.
func Sessions() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <store>",
		Short: "List the sessions of a timelinestore",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			return timelinestore.WithReader(args[0], func(reader timelinestore.StorageReader) error {
				sessions, err := reader.GetSessions()
				if err != nil {
					return err
				}
				for {
					session, err := sessions.Next()
					if err != nil {
						return err
					}
					if session == nil {
						return nil
					}
					line, err := json.Marshal(session)
					if err != nil {
						return err
					}
					fmt.Println(string(line))
				}
			})
		},
	}
}

// Merge is the timelinestore merge commandline subcommand. It merges all task
// stores below a directory into a session store.
func Merge() *cobra.Command {
	var taskDir string
	mergeCommand := &cobra.Command{
		Use:   "merge <store>",
		Short: "Merge task stores into a session store",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := timelinestore.New(args[0], timelinestore.StorageTypeSession)
			if err != nil {
				return err
			}
			defer store.Close() // nolint:errcheck

			taskStores, err := timelinestore.FindTaskStores(afero.NewOsFs(), taskDir)
			if err != nil {
				return err
			}

			for _, taskStore := range taskStores {
				log.Info("merging task store", "path", taskStore)
				err := timelinestore.WithReader(taskStore, func(reader timelinestore.StorageReader) error {
					return store.MergeTaskStore(reader)
				})
				if err != nil {
					return err
				}
			}
			return store.Close()
		},
	}
	mergeCommand.Flags().StringVar(&taskDir, "task-dir", ".", "directory containing the task stores")
	return mergeCommand
}
