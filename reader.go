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

// StorageReader is the read-only narrowing of the store contract, intended
// for consumers that must never mutate: analysis plugins, output modules and
// the merge coordinator reading a finished task store.
type StorageReader interface {
	Close() error
	StorageType() string
	GetAttributeContainerByIdentifier(containerType string, identifier Identifier) (AttributeContainer, error)
	GetAttributeContainers(containerType string) (*ContainerIterator, error)
	GetNumberOfAttributeContainers(containerType string) (int64, error)
	GetSessions() (*SessionIterator, error)
	GetSortedEvents(timeRange *TimeRange) (*EventIterator, error)
	HasAttributeContainers(containerType string) (bool, error)
	ReadSystemConfiguration(knowledgeBase KnowledgeBase) error
}

// OpenRead opens an existing store as a StorageReader.
func OpenRead(url string, options ...Option) (StorageReader, error) {
	return Open(url, options...)
}

// WithReader opens an existing store, passes it to fn and closes it on every
// exit path.
func WithReader(url string, fn func(reader StorageReader) error) error {
	reader, err := OpenRead(url)
	if err != nil {
		return err
	}

	err = fn(reader)
	if cerr := reader.Close(); err == nil {
		err = cerr
	}
	return err
}
