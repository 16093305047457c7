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

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/timelinestore"
)

func TestCreateCommand(t *testing.T) {
	url := filepath.Join(t.TempDir(), "example.timelinestore")

	command := Create()
	command.SetArgs([]string{"--type", "task", url})
	require.NoError(t, command.Execute())

	reader, err := timelinestore.OpenRead(url)
	require.NoError(t, err)
	defer reader.Close() // nolint:errcheck
	assert.Equal(t, timelinestore.StorageTypeTask, reader.StorageType())
}

func TestCreateCommandRequiresStore(t *testing.T) {
	command := Create()
	command.SetArgs([]string{})
	assert.Error(t, command.Execute())
}

func TestInfoAndEventsCommands(t *testing.T) {
	url := filepath.Join(t.TempDir(), "example.timelinestore")

	store, err := timelinestore.New(url, timelinestore.StorageTypeSession)
	require.NoError(t, err)
	require.NoError(t, store.AddAttributeContainer(timelinestore.NewEventObject(1000, "Creation Time")))
	require.NoError(t, store.AddAttributeContainer(timelinestore.NewEventObject(2000, "Last Access Time")))
	require.NoError(t, store.Close())

	infoCommand := Info()
	infoCommand.SetArgs([]string{url})
	require.NoError(t, infoCommand.Execute())

	eventsCommand := Events()
	eventsCommand.SetArgs([]string{"--start", "1000", "--end", "2000", url})
	require.NoError(t, eventsCommand.Execute())
}

func TestMergeCommand(t *testing.T) {
	taskDir := t.TempDir()
	taskURL := timelinestore.TaskStorePath(taskDir, "fd84cb3a9ff04c1db7ba9788be843e27")

	taskStore, err := timelinestore.New(taskURL, timelinestore.StorageTypeTask)
	require.NoError(t, err)
	require.NoError(t, taskStore.AddAttributeContainer(timelinestore.NewEventObject(1000, "Creation Time")))
	require.NoError(t, taskStore.Close())

	url := filepath.Join(t.TempDir(), "session.timelinestore")
	command := Merge()
	command.SetArgs([]string{"--task-dir", taskDir, url})
	require.NoError(t, command.Execute())

	err = timelinestore.WithReader(url, func(reader timelinestore.StorageReader) error {
		count, err := reader.GetNumberOfAttributeContainers(timelinestore.ContainerTypeEvent)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		return nil
	})
	require.NoError(t, err)
}
