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

// Package main implements the timelinestore command line tool with various
// subcommands to handle timelinestores.
//     create    Create a timelinestore
//     info      Show the container counts of a timelinestore
//     events    Print the sorted event timeline
//     sessions  List the sessions of a timelinestore
//     merge     Merge task stores into a session store
//
// Usage
//
// Create a session store
//     timelinestore create session.timelinestore
// Merge the task stores of a run
//     timelinestore merge --task-dir tasks session.timelinestore
// Print the timeline
//     timelinestore events session.timelinestore
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/timelinestore/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timelinestore",
		Short: "Handle timelinestore files",
	}
	rootCmd.AddCommand(cmd.Create(), cmd.Info(), cmd.Events(), cmd.Sessions(), cmd.Merge())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
