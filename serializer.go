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
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// serializer converts attribute containers to and from their persisted JSON
// form. The optional profiler wraps every call, keyed by container type.
type serializer struct {
	profiler Profiler
}

func newSerializer(profiler Profiler) *serializer {
	return &serializer{profiler: profiler}
}

// Encode serializes a container. Decode(containerType, Encode(c)) returns a
// container equal to c for every attribute present on c.
func (s *serializer) Encode(container AttributeContainer) ([]byte, error) {
	containerType := container.ContainerType()
	if s.profiler != nil {
		s.profiler.StartTiming(containerType)
		defer s.profiler.StopTiming(containerType)
	}

	data, err := json.Marshal(container)
	if err != nil {
		return nil, errors.Wrapf(ErrSerialization, "%s container: %s", containerType, err)
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.Wrapf(ErrSerialization, "empty payload for %s container", containerType)
	}
	return data, nil
}

// Decode parses serialized container data. It distinguishes data that is not
// valid UTF-8 from data that does not parse into a container of the declared
// type.
func (s *serializer) Decode(containerType string, data []byte) (AttributeContainer, error) {
	if s.profiler != nil {
		s.profiler.StartTiming(containerType)
		defer s.profiler.StopTiming(containerType)
	}

	if !utf8.Valid(data) {
		return nil, errors.Wrapf(ErrInvalidEncoding, "%s container", containerType)
	}

	container := newContainerOfType(containerType)
	if container == nil {
		return nil, errors.Wrapf(ErrMalformedContainer, "unknown container type %q", containerType)
	}
	if err := json.Unmarshal(data, container); err != nil {
		return nil, errors.Wrapf(ErrMalformedContainer, "%s container: %s", containerType, err)
	}
	return container, nil
}
