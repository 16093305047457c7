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
	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
)

// ContainerIterator is a lazy, forward-only, single-pass sequence of
// containers. Callers needing a second pass must request a fresh iterator
// from the store.
type ContainerIterator struct {
	store         *Store
	stmt          *sqlite.Stmt
	containerType string
	done          bool
}

// Next returns the next container, or nil once the sequence is exhausted.
// Decoding failures and state errors are returned, a corrupted container is
// never reported as absent.
func (iterator *ContainerIterator) Next() (AttributeContainer, error) {
	if err := iterator.store.raiseIfNotReadable(); err != nil {
		return nil, err
	}
	if iterator.done {
		return nil, nil
	}

	if iterator.store.storageProfiler != nil {
		iterator.store.storageProfiler.StartTiming("read")
		defer iterator.store.storageProfiler.StopTiming("read")
	}

	hasRow, err := iterator.stmt.Step()
	if err != nil {
		iterator.Close() // nolint:errcheck
		return nil, errors.Wrapf(err, "could not read %s container", iterator.containerType)
	}
	if !hasRow {
		return nil, iterator.Close()
	}

	sequence := iterator.stmt.GetInt64("sequence")
	data := []byte(iterator.stmt.GetText("json"))

	container, err := iterator.store.serializer.Decode(iterator.containerType, data)
	if err != nil {
		return nil, err
	}
	container.SetIdentifier(newIdentifier(sequence))
	return container, nil
}

// Close releases the underlying cursor. Exhausted iterators close themselves.
func (iterator *ContainerIterator) Close() error {
	if iterator.done {
		return nil
	}
	delete(iterator.store.iterators, iterator)
	return iterator.finalize()
}

func (iterator *ContainerIterator) finalize() error {
	if iterator.done {
		return nil
	}
	iterator.done = true
	return iterator.stmt.Finalize()
}

// EventIterator is a lazy, forward-only, single-pass sequence of events.
type EventIterator struct {
	containers *ContainerIterator
}

// Next returns the next event, or nil once the sequence is exhausted.
func (iterator *EventIterator) Next() (*EventObject, error) {
	container, err := iterator.containers.Next()
	if container == nil || err != nil {
		return nil, err
	}
	return container.(*EventObject), nil
}

// Close releases the underlying cursor.
func (iterator *EventIterator) Close() error {
	return iterator.containers.Close()
}
