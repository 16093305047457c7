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
)

func TestAttributeMap(t *testing.T) {
	event := &EventObject{
		Timestamp:     1577836800000000,
		TimestampDesc: "Creation Time",
	}
	assert.Equal(t, map[string]interface{}{
		"timestamp":      int64(1577836800000000),
		"timestamp_desc": "Creation Time",
	}, AttributeMap(event))
}

func TestAttributeMapNestedAttributes(t *testing.T) {
	eventData := &EventData{
		DataType: "windows:registry:key_value",
		Attributes: map[string]interface{}{
			"key_path": `HKEY_LOCAL_MACHINE\Software\Microsoft`,
		},
	}
	assert.Equal(t, map[string]interface{}{
		"data_type": "windows:registry:key_value",
		"attributes": map[string]interface{}{
			"key_path": `HKEY_LOCAL_MACHINE\Software\Microsoft`,
		},
	}, AttributeMap(eventData))
}

func TestAttributeMapOmitsEmptyValues(t *testing.T) {
	attributes := AttributeMap(&EventData{DataType: "fs:stat"})
	assert.Equal(t, map[string]interface{}{"data_type": "fs:stat"}, attributes)
	assert.NotContains(t, attributes, "parser_chain")
	assert.NotContains(t, attributes, "event_data_stream_identifier")
}
