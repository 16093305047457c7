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

package timelinestore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContainerTypeSupported(t *testing.T) {
	// shared types are writable everywhere
	assert.True(t, IsContainerTypeSupported(ContainerTypeEvent, StorageTypeSession))
	assert.True(t, IsContainerTypeSupported(ContainerTypeEvent, StorageTypeTask))

	assert.True(t, IsContainerTypeSupported(ContainerTypeSessionStart, StorageTypeSession))
	assert.False(t, IsContainerTypeSupported(ContainerTypeSessionStart, StorageTypeTask))
	assert.False(t, IsContainerTypeSupported(ContainerTypeSessionConfiguration, StorageTypeTask))
	assert.False(t, IsContainerTypeSupported(ContainerTypeSystemConfiguration, StorageTypeTask))

	assert.True(t, IsContainerTypeSupported(ContainerTypeTaskStart, StorageTypeTask))
	assert.False(t, IsContainerTypeSupported(ContainerTypeTaskStart, StorageTypeSession))
	assert.False(t, IsContainerTypeSupported(ContainerTypeTaskCompletion, StorageTypeSession))

	assert.False(t, IsContainerTypeSupported(ContainerTypeEvent, "archive"))
}

func TestNewContainerOfType(t *testing.T) {
	for _, containerType := range SupportedContainerTypes() {
		container := newContainerOfType(containerType)
		require.NotNil(t, container, containerType)
		assert.Equal(t, containerType, container.ContainerType())
	}
	assert.Nil(t, newContainerOfType("telemetry"))
}

func TestNewSessionStart(t *testing.T) {
	first := NewSessionStart()
	second := NewSessionStart()

	assert.NotEmpty(t, first.SessionIdentifier)
	assert.NotEqual(t, first.SessionIdentifier, second.SessionIdentifier)
	assert.NotZero(t, first.Timestamp)
}

func TestNewTaskStart(t *testing.T) {
	sessionStart := NewSessionStart()
	taskStart := NewTaskStart(sessionStart.SessionIdentifier)

	assert.NotEmpty(t, taskStart.TaskIdentifier)
	assert.Equal(t, sessionStart.SessionIdentifier, taskStart.SessionIdentifier)
	assert.NotZero(t, taskStart.Timestamp)
}

func TestIdentifier(t *testing.T) {
	var empty Identifier
	assert.True(t, empty.IsEmpty())

	identifier := newIdentifier(42)
	assert.False(t, identifier.IsEmpty())
	assert.True(t, identifier.Equal(newIdentifier(42)))
	assert.False(t, identifier.Equal(newIdentifier(23)))
	assert.Equal(t, "42", identifier.String())
}

func TestIdentifierJSON(t *testing.T) {
	identifier := newIdentifier(42)

	data, err := json.Marshal(identifier)
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))

	var decoded Identifier
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, identifier.Equal(decoded))
}
