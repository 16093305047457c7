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
	"path"

	"github.com/forensicanalysis/fsdoublestar"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// mergeContainerTypes lists the container types copied from a task store into
// a session store, ordered so cross references can be remapped before the
// referencing container is written.
var mergeContainerTypes = []string{
	ContainerTypeEventSource,
	ContainerTypeEventDataStream,
	ContainerTypeEventData,
	ContainerTypeEvent,
	ContainerTypeEventTag,
	ContainerTypeExtractionWarning,
	ContainerTypeRecoveryWarning,
	ContainerTypePreprocessingWarning,
	ContainerTypeAnalysisReport,
}

// MergeTaskStore copies the results of a completed task store into this
// store. Identifiers are reassigned by the receiving store and cross
// references between containers are remapped. Task start and completion
// containers are not merged. Task stores must be merged sequentially by one
// coordinator.
func (store *Store) MergeTaskStore(reader StorageReader) error { // nolint:gocyclo
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}

	remap := map[string]map[int64]Identifier{
		ContainerTypeEvent:           {},
		ContainerTypeEventData:       {},
		ContainerTypeEventDataStream: {},
	}

	for _, containerType := range mergeContainerTypes {
		iterator, err := reader.GetAttributeContainers(containerType)
		if err != nil {
			return err
		}

		for {
			container, err := iterator.Next()
			if err != nil {
				return err
			}
			if container == nil {
				break
			}

			switch c := container.(type) {
			case *EventData:
				if c.EventDataStreamIdentifier != nil {
					identifier, err := remapIdentifier(remap, ContainerTypeEventDataStream, *c.EventDataStreamIdentifier)
					if err != nil {
						return err
					}
					c.EventDataStreamIdentifier = &identifier
				}
			case *EventObject:
				if c.EventDataIdentifier != nil {
					identifier, err := remapIdentifier(remap, ContainerTypeEventData, *c.EventDataIdentifier)
					if err != nil {
						return err
					}
					c.EventDataIdentifier = &identifier
				}
			case *EventTag:
				if c.EventIdentifier != nil {
					identifier, err := remapIdentifier(remap, ContainerTypeEvent, *c.EventIdentifier)
					if err != nil {
						return err
					}
					c.EventIdentifier = &identifier
				}
			}

			oldIdentifier := container.Identifier()
			if err := store.writeNewAttributeContainer(container); err != nil {
				return err
			}
			if identifiers, ok := remap[containerType]; ok {
				identifiers[oldIdentifier.sequenceNumber] = container.Identifier()
			}
		}
	}

	return nil
}

func remapIdentifier(remap map[string]map[int64]Identifier, containerType string, old Identifier) (Identifier, error) {
	identifier, ok := remap[containerType][old.sequenceNumber]
	if !ok {
		return Identifier{}, errors.Wrapf(ErrCorruptStore,
			"unknown %s reference %s in task store", containerType, old)
	}
	return identifier, nil
}

// TaskStorePath returns the store file path for a task within a task
// directory.
func TaskStorePath(dir, taskIdentifier string) string {
	return path.Join(dir, "task_"+taskIdentifier+".timelinestore")
}

// FindTaskStores returns the paths of all task store files below dir, in
// lexical order.
func FindTaskStores(fs afero.Fs, dir string) ([]string, error) {
	return fsdoublestar.Glob(afero.NewIOFS(fs), path.Join(dir, "**/task_*.timelinestore"))
}
