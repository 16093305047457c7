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

// Package timelinestore stores the typed attribute containers of a forensic
// timeline extraction (a database for forensic events).
//
// The timelinestore format
//
// A timelinestore is a single SQLite file with the following conventions:
//     - All containers live in a containers table, as JSON payloads tagged
//       with their container type and insertion time.
//     - Every store is scoped to either one extraction task or one full
//       session; the storage type constrains which container types may be
//       written (e.g. task_start containers only exist in task stores).
//     - Containers are created once and never updated in place; annotations
//       like event tags are new containers referencing the original by its
//       store assigned identifier.
//     - Events carry a timestamp in microseconds since the POSIX epoch, kept
//       in a separate indexed column for sorted timeline reads.
//     - On close, a view per container type exposes the flattened container
//       attributes as columns, so stores can be inspected with plain SQL.
//
// Typical use
//
// An extraction worker writes its results into a task store:
//     store, _ := timelinestore.New("task_fd84cb3a.timelinestore", timelinestore.StorageTypeTask)
//     store.WriteTaskStart(timelinestore.NewTaskStart(sessionID))
//     store.AddAttributeContainer(eventData)
//     event := timelinestore.NewEventObject(timestamp, "Content Modification Time")
//     id := eventData.Identifier()
//     event.EventDataIdentifier = &id
//     store.AddAttributeContainer(event)
// A coordinator later merges finished task stores into the session store and
// output modules read the assembled timeline:
//     reader, _ := timelinestore.OpenRead("session.timelinestore")
//     events, _ := reader.GetSortedEvents(nil)
package timelinestore
