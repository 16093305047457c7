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

func TestHostKnowledgeBase(t *testing.T) {
	kb := &HostKnowledgeBase{}

	require.NoError(t, kb.ReadSystemConfigurationArtifact(&SystemConfigurationArtifact{
		Hostname:        "WORKSTATION-7",
		OperatingSystem: "Windows",
		UserAccounts: []UserAccount{
			{Identifier: "1000", Username: "jdoe"},
		},
	}))
	require.NoError(t, kb.ReadSystemConfigurationArtifact(&SystemConfigurationArtifact{
		Hostname: "IGNORED",
		TimeZone: "Europe/Berlin",
		UserAccounts: []UserAccount{
			{Identifier: "1001", Username: "admin"},
		},
	}))

	// the first non-empty value wins, user accounts accumulate
	assert.Equal(t, "WORKSTATION-7", kb.Hostname)
	assert.Equal(t, "Windows", kb.OperatingSystem)
	assert.Equal(t, "Europe/Berlin", kb.TimeZone)
	assert.Equal(t, []UserAccount{
		{Identifier: "1000", Username: "jdoe"},
		{Identifier: "1001", Username: "admin"},
	}, kb.Users)
}

func TestReadSystemConfiguration(t *testing.T) {
	store := newTestStore(t, StorageTypeSession)
	require.NoError(t, store.AddAttributeContainer(&SystemConfigurationArtifact{
		Hostname: "WORKSTATION-7",
		TimeZone: "UTC",
	}))

	kb := &HostKnowledgeBase{}
	require.NoError(t, store.ReadSystemConfiguration(kb))
	assert.Equal(t, "WORKSTATION-7", kb.Hostname)
	assert.Equal(t, "UTC", kb.TimeZone)
}

func TestReadSystemConfigurationEmptyStore(t *testing.T) {
	store := newTestStore(t, StorageTypeSession)

	kb := &HostKnowledgeBase{}
	require.NoError(t, store.ReadSystemConfiguration(kb))
	assert.Equal(t, &HostKnowledgeBase{}, kb)
}

func TestWriteSessionConfigurationSkippedForLegacyStores(t *testing.T) {
	store := newTestStore(t, StorageTypeSession)
	require.NoError(t, store.AddAttributeContainer(&SystemConfigurationArtifact{Hostname: "h"}))

	require.NoError(t, store.WriteSessionConfiguration(&SessionConfiguration{SessionIdentifier: "a"}))

	// legacy stores keep their system configuration containers instead
	count, err := store.GetNumberOfAttributeContainers(ContainerTypeSessionConfiguration)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
