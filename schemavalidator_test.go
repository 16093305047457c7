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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name          string
		containerType string
		data          string
		valid         bool
	}{
		{"valid event", ContainerTypeEvent, `{"timestamp": 1000, "timestamp_desc": "Creation Time"}`, true},
		{"wrong timestamp type", ContainerTypeEvent, `{"timestamp": "yesterday"}`, false},
		{"valid session start", ContainerTypeSessionStart, `{"identifier": "a", "timestamp": 1000}`, true},
		{"session start without identifier", ContainerTypeSessionStart, `{"timestamp": 1000}`, false},
		{"task completion without identifier", ContainerTypeTaskCompletion, `{"aborted": true}`, false},
		{"unvalidated container type", ContainerTypeEventData, `{"data_type": 7}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flaws, err := validateSchema(tt.containerType, []byte(tt.data))
			require.NoError(t, err)
			if tt.valid {
				assert.Empty(t, flaws)
			} else {
				assert.NotEmpty(t, flaws)
			}
		})
	}
}

func TestAddAttributeContainerValidates(t *testing.T) {
	store := newTestStore(t, StorageTypeSession)

	err := store.WriteSessionStart(&SessionStart{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be validated")
}
