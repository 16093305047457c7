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

import "github.com/pkg/errors"

var (
	// ErrStoreExists is returned when creating a store at an existing path.
	ErrStoreExists = errors.New("store already exists")
	// ErrStoreNotExists is returned when opening a missing store.
	ErrStoreNotExists = errors.New("store does not exist")

	// ErrNotWritable is returned for any mutation on a closed or read-only
	// store.
	ErrNotWritable = errors.New("store is not writable")
	// ErrNotReadable is returned for any query on a closed store.
	ErrNotReadable = errors.New("store is not readable")

	// ErrInvalidContainerType is returned when a container type is not
	// allowed for the storage type of the store.
	ErrInvalidContainerType = errors.New("container type not supported by storage type")

	// ErrSerialization is returned when a container cannot be serialized.
	ErrSerialization = errors.New("cannot serialize attribute container")
	// ErrInvalidEncoding is returned when serialized container data is not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("serialized data is not valid UTF-8")
	// ErrMalformedContainer is returned when serialized data does not parse
	// into a well-formed container of the declared type.
	ErrMalformedContainer = errors.New("serialized data is malformed")

	// ErrCorruptStore is returned when aligned container streams do not add
	// up, e.g. a missing session start.
	ErrCorruptStore = errors.New("store is corrupt")
)
