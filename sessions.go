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
	"github.com/pkg/errors"
)

// Session is the aggregate of matched session start, configuration and
// completion containers sharing one session identifier. It is reconstructed
// on read, never persisted as a single record.
type Session struct {
	Identifier     string
	ProductName    string
	ProductVersion string
	StartTime      int64

	ArtifactFilters      []string
	CommandLineArguments string
	DebugMode            bool
	EnabledParserNames   []string
	FilterFile           string
	PreferredEncoding    string
	PreferredTimeZone    string

	Aborted        bool
	Completed      bool
	CompletionTime int64
	ParsersCounter map[string]int64
}

// CopyAttributesFromSessionStart sets the attributes shared with a session
// start container.
func (session *Session) CopyAttributesFromSessionStart(start *SessionStart) {
	session.Identifier = start.SessionIdentifier
	session.ProductName = start.ProductName
	session.ProductVersion = start.ProductVersion
	session.StartTime = start.Timestamp
}

// CopyAttributesFromSessionConfiguration sets the attributes shared with a
// session configuration container. It fails when the session identifiers do
// not match.
func (session *Session) CopyAttributesFromSessionConfiguration(configuration *SessionConfiguration) error {
	if configuration.SessionIdentifier != session.Identifier {
		return errors.New("session identifier mismatch")
	}
	session.ArtifactFilters = configuration.ArtifactFilters
	session.CommandLineArguments = configuration.CommandLineArguments
	session.DebugMode = configuration.DebugMode
	session.EnabledParserNames = configuration.EnabledParserNames
	session.FilterFile = configuration.FilterFile
	session.PreferredEncoding = configuration.PreferredEncoding
	session.PreferredTimeZone = configuration.PreferredTimeZone
	return nil
}

// CopyAttributesFromSessionCompletion sets the attributes shared with a
// session completion container. It fails when the session identifiers do not
// match.
func (session *Session) CopyAttributesFromSessionCompletion(completion *SessionCompletion) error {
	if completion.SessionIdentifier != session.Identifier {
		return errors.New("session identifier mismatch")
	}
	session.Aborted = completion.Aborted
	session.Completed = true
	session.CompletionTime = completion.Timestamp
	session.ParsersCounter = completion.ParsersCounter
	return nil
}

// SessionIterator assembles sessions from the aligned session start,
// configuration and completion streams of a store. It is lazy, forward-only
// and single-pass.
type SessionIterator struct {
	starts         *ContainerIterator
	completions    *ContainerIterator
	configurations *ContainerIterator

	pendingCompletion *SessionCompletion
	sessionIndex      int
	lastSession       int
}

// Next returns the next session in ascending session index order, or nil once
// all sessions were returned.
//
// A session without a completion container is returned as incomplete, e.g.
// after a crashed run; the held back completion is matched against later
// sessions by identifier. A missing session start or a missing session
// configuration indicates store corruption and is fatal, as is a completion
// that belongs to no session.
func (iterator *SessionIterator) Next() (*Session, error) { // nolint:gocyclo
	if iterator.sessionIndex >= iterator.lastSession {
		if err := iterator.Close(); err != nil {
			return nil, err
		}
		if iterator.pendingCompletion != nil {
			iterator.pendingCompletion = nil
			return nil, errors.Wrapf(ErrCorruptStore,
				"session identifier mismatch for session completion: %d", iterator.lastSession)
		}
		return nil, nil
	}
	iterator.sessionIndex++

	container, err := iterator.starts.Next()
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, errors.Wrapf(ErrCorruptStore, "missing session start: %d", iterator.sessionIndex)
	}
	start := container.(*SessionStart)

	if iterator.pendingCompletion == nil {
		container, err = iterator.completions.Next()
		if err != nil {
			return nil, err
		}
		if container != nil {
			iterator.pendingCompletion = container.(*SessionCompletion)
		}
	}

	var configuration *SessionConfiguration
	if iterator.configurations != nil {
		container, err = iterator.configurations.Next()
		if err != nil {
			return nil, err
		}
		if container == nil {
			return nil, errors.Wrapf(ErrCorruptStore, "missing session configuration: %d", iterator.sessionIndex)
		}
		configuration = container.(*SessionConfiguration)
	}

	session := &Session{}
	session.CopyAttributesFromSessionStart(start)

	if configuration != nil {
		if err := session.CopyAttributesFromSessionConfiguration(configuration); err != nil {
			return nil, errors.Wrapf(ErrCorruptStore,
				"session identifier mismatch for session configuration: %d", iterator.sessionIndex)
		}
	}

	if iterator.pendingCompletion != nil &&
		iterator.pendingCompletion.SessionIdentifier == session.Identifier {
		if err := session.CopyAttributesFromSessionCompletion(iterator.pendingCompletion); err != nil {
			return nil, errors.Wrapf(ErrCorruptStore,
				"session identifier mismatch for session completion: %d", iterator.sessionIndex)
		}
		iterator.pendingCompletion = nil
	}

	return session, nil
}

// Close releases the underlying cursors.
func (iterator *SessionIterator) Close() error {
	err := iterator.starts.Close()
	if cerr := iterator.completions.Close(); err == nil {
		err = cerr
	}
	if iterator.configurations != nil {
		if cerr := iterator.configurations.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
