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
	"github.com/imdario/mergo"
)

// KnowledgeBase consumes system configuration artifacts read back out of a
// session store.
type KnowledgeBase interface {
	ReadSystemConfigurationArtifact(artifact *SystemConfigurationArtifact) error
}

// HostKnowledgeBase folds system configuration artifacts into one view of the
// examined system. The first non-empty value of each attribute wins, user
// accounts are collected from all artifacts.
type HostKnowledgeBase struct {
	Hostname               string
	OperatingSystem        string
	OperatingSystemProduct string
	OperatingSystemVersion string
	Codepage               string
	TimeZone               string
	Users                  []UserAccount
}

func (kb *HostKnowledgeBase) ReadSystemConfigurationArtifact(artifact *SystemConfigurationArtifact) error {
	return mergo.Merge(kb, HostKnowledgeBase{
		Hostname:               artifact.Hostname,
		OperatingSystem:        artifact.OperatingSystem,
		OperatingSystemProduct: artifact.OperatingSystemProduct,
		OperatingSystemVersion: artifact.OperatingSystemVersion,
		Codepage:               artifact.Codepage,
		TimeZone:               artifact.TimeZone,
		Users:                  artifact.UserAccounts,
	}, mergo.WithAppendSlice)
}
