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
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/qri-io/jsonschema"
)

// containerSchemas holds JSON schemas for container payloads. Container types
// without a schema are not validated.
var containerSchemas = map[string]string{
	ContainerTypeEvent: `{
		"type": "object",
		"properties": {
			"timestamp": {"type": "integer"},
			"timestamp_desc": {"type": "string"},
			"_event_data_identifier": {"type": "integer"}
		}
	}`,
	ContainerTypeSessionStart: `{
		"type": "object",
		"required": ["identifier"],
		"properties": {
			"identifier": {"type": "string"},
			"product_name": {"type": "string"},
			"product_version": {"type": "string"},
			"timestamp": {"type": "integer"}
		}
	}`,
	ContainerTypeSessionCompletion: `{
		"type": "object",
		"required": ["identifier"],
		"properties": {
			"identifier": {"type": "string"},
			"aborted": {"type": "boolean"},
			"timestamp": {"type": "integer"}
		}
	}`,
	ContainerTypeTaskStart: `{
		"type": "object",
		"required": ["identifier"],
		"properties": {
			"identifier": {"type": "string"},
			"session_identifier": {"type": "string"},
			"timestamp": {"type": "integer"}
		}
	}`,
	ContainerTypeTaskCompletion: `{
		"type": "object",
		"required": ["identifier"],
		"properties": {
			"identifier": {"type": "string"},
			"session_identifier": {"type": "string"},
			"aborted": {"type": "boolean"},
			"timestamp": {"type": "integer"}
		}
	}`,
}

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
)

func loadSchemas() {
	schemas = map[string]*jsonschema.Schema{}
	for containerType, content := range containerSchemas {
		schema := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(content), schema); err != nil {
			panic(err)
		}
		schemas[containerType] = schema
	}
}

func validateSchema(containerType string, data []byte) (flaws []string, err error) {
	schemaOnce.Do(loadSchemas)

	schema, ok := schemas[containerType]
	if !ok {
		return nil, nil
	}

	errs, err := schema.ValidateBytes(context.Background(), data)
	if err != nil {
		return nil, err
	}
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate container: %s", verr.Message))
	}
	return flaws, nil
}
