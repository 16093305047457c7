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
	"strconv"
)

// Identifier is an opaque reference to a single container in a store. It is
// assigned by the store on first write and never reused within a store's
// lifetime. Only equality and lookup are guaranteed, never ordering or
// structure.
type Identifier struct {
	sequenceNumber int64
}

func newIdentifier(sequenceNumber int64) Identifier {
	return Identifier{sequenceNumber: sequenceNumber}
}

// Equal reports whether two identifiers reference the same container.
func (i Identifier) Equal(other Identifier) bool {
	return i.sequenceNumber == other.sequenceNumber
}

// IsEmpty reports whether the identifier was assigned by a store yet.
func (i Identifier) IsEmpty() bool {
	return i.sequenceNumber == 0
}

func (i Identifier) String() string {
	return strconv.FormatInt(i.sequenceNumber, 10)
}

// MarshalJSON serializes the identifier so containers can cross-reference
// each other, e.g. an event referencing its event data.
func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.sequenceNumber)
}

func (i *Identifier) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &i.sequenceNumber)
}
