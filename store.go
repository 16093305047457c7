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
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/timelinestore/goflatten"
)

const storeVersion = 1
const timelineApplicationID = 1701603699
const serializationFormat = "json"

// TimeRange filters events to the half-open interval [Start, End) in
// microseconds since the POSIX epoch.
type TimeRange struct {
	Start int64
	End   int64
}

// The Store is the central storage for attribute containers produced during a
// forensic timeline extraction. Every container of one extraction run is kept
// in a single SQLite file, partitioned by container type. A store is scoped
// either to one extraction task or to a full session; the storage type
// constrains which container types may be written.
type Store struct {
	conn      *sqlite.Conn
	url       string
	open      bool
	writable  bool
	iterators map[*ContainerIterator]bool

	serializer      *serializer
	storageProfiler Profiler
	types           *typeMap
	lastSession     int

	storageType string
}

// Option configures a store at construction.
type Option func(store *Store)

// WithSerializersProfiler times every container encode and decode, keyed by
// container type.
func WithSerializersProfiler(profiler Profiler) Option {
	return func(store *Store) {
		store.serializer = newSerializer(profiler)
	}
}

// WithStorageProfiler times the storage reads and writes.
func WithStorageProfiler(profiler Profiler) Option {
	return func(store *Store) {
		store.storageProfiler = profiler
	}
}

// New creates a store for a live extraction run. It accepts writes of any
// container type allowed for the storage type. The url ":memory:" creates a
// transient in-memory store.
func New(url string, storageType string, options ...Option) (*Store, error) {
	if storageType != StorageTypeSession && storageType != StorageTypeTask {
		return nil, fmt.Errorf("unsupported storage type %q", storageType)
	}
	return open(url, storageType, true, options...)
}

// Open opens an existing, finalized store read-only. Every mutation fails
// with ErrNotWritable.
func Open(url string, options ...Option) (*Store, error) {
	return open(url, "", false, options...)
}

func open(url string, storageType string, create bool, options ...Option) (*Store, error) { // nolint:gocyclo,funlen
	if url != ":memory:" {
		url = strings.TrimRight(url, "/")

		exists := true
		_, err := os.Stat(url)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			exists = false
		}

		if create && exists {
			return nil, ErrStoreExists
		}
		if !create && !exists {
			return nil, ErrStoreNotExists
		}

		if create {
			err = os.MkdirAll(path.Dir(url), 0750)
			if err != nil {
				return nil, err
			}

			log.Printf("Creating %s store %s", storageType, url)
			_, err := os.Create(url)
			if err != nil {
				return nil, err
			}
		}
	}

	store := &Store{
		url:         url,
		open:        true,
		writable:    create,
		iterators:   map[*ContainerIterator]bool{},
		serializer:  newSerializer(nil),
		types:       newTypeMap(),
		storageType: storageType,
	}

	for _, option := range options {
		option(store)
	}

	var err error
	store.conn, err = sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, err
	}

	if create {
		err = setPragma(store.conn, "application_id", timelineApplicationID)
		if err != nil {
			return nil, err
		}

		err = setPragma(store.conn, "user_version", storeVersion)
		if err != nil {
			return nil, err
		}

		err = store.exec("CREATE TABLE `containers` (" +
			"`sequence` INTEGER PRIMARY KEY AUTOINCREMENT, " +
			"`container_type` TEXT NOT NULL, " +
			"`json` TEXT NOT NULL, " +
			"`timestamp` INTEGER, " +
			"`insert_time` TEXT)")
		if err != nil {
			return nil, err
		}
		err = store.exec("CREATE INDEX `containers_by_type` ON `containers` (`container_type`, `sequence`)")
		if err != nil {
			return nil, err
		}
		err = store.exec("CREATE INDEX `containers_by_time` ON `containers` (`container_type`, `timestamp`)")
		if err != nil {
			return nil, err
		}
		err = store.exec("CREATE TABLE `metadata` (`key` TEXT PRIMARY KEY, `value` TEXT)")
		if err != nil {
			return nil, err
		}
		err = store.setMetadata("storage_type", storageType)
		if err != nil {
			return nil, err
		}
		err = store.setMetadata("serialization_format", serializationFormat)
		if err != nil {
			return nil, err
		}
	} else {
		applicationID, err := pragma(store.conn, "application_id")
		if err != nil {
			return nil, err
		}
		if applicationID != timelineApplicationID {
			msg := "wrong file format (application_id is %d, requires %d)"
			return nil, fmt.Errorf(msg, applicationID, timelineApplicationID)
		}

		version, err := pragma(store.conn, "user_version")
		if err != nil {
			return nil, err
		}
		if version != storeVersion {
			msg := "wrong file format (user_version is %d, requires %d)"
			return nil, fmt.Errorf(msg, version, storeVersion)
		}

		store.storageType, err = store.metadata("storage_type")
		if err != nil {
			return nil, err
		}

		count, err := store.countContainers(ContainerTypeSessionStart)
		if err != nil {
			return nil, err
		}
		store.lastSession = int(count)
	}

	return store, nil
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	_, err = stmt.Step()
	if err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare("PRAGMA " + name + " = " + fmt.Sprint(i))
	if err != nil {
		return err
	}
	_, err = stmt.Step()
	if err != nil {
		return err
	}
	return stmt.Finalize()
}

/* ################################
#   API
################################ */

// StorageType returns whether the store is scoped to a session or a task.
func (store *Store) StorageType() string {
	return store.storageType
}

// AddAttributeContainer adds a new container to the store and assigns its
// identifier.
func (store *Store) AddAttributeContainer(container AttributeContainer) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	return store.writeNewAttributeContainer(container)
}

// GetAttributeContainerByIdentifier retrieves a container of a specific type
// with a specific identifier. It returns nil without error if no such
// container exists.
func (store *Store) GetAttributeContainerByIdentifier(containerType string, identifier Identifier) (AttributeContainer, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return nil, err
	}

	stmt, _, err := store.conn.PrepareTransient(
		"SELECT json FROM `containers` WHERE `sequence` = $sequence AND `container_type` = $type")
	if err != nil {
		return nil, err
	}
	stmt.SetInt64("$sequence", identifier.sequenceNumber)
	stmt.SetText("$type", containerType)

	hasRow, err := stmt.Step()
	if err != nil {
		stmt.Finalize() // nolint:errcheck
		return nil, err
	}
	if !hasRow {
		return nil, stmt.Finalize()
	}

	data := []byte(stmt.GetText("json"))
	if err := stmt.Finalize(); err != nil {
		return nil, err
	}

	container, err := store.serializer.Decode(containerType, data)
	if err != nil {
		return nil, err
	}
	container.SetIdentifier(identifier)
	return container, nil
}

// GetAttributeContainers retrieves all containers of a specific type in write
// order. The returned sequence is lazy and single-pass; every call opens an
// independent cursor.
func (store *Store) GetAttributeContainers(containerType string) (*ContainerIterator, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return nil, err
	}

	stmt, _, err := store.conn.PrepareTransient(
		"SELECT sequence, json FROM `containers` WHERE `container_type` = $type ORDER BY `sequence`")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$type", containerType)

	iterator := &ContainerIterator{store: store, stmt: stmt, containerType: containerType}
	store.iterators[iterator] = true
	return iterator, nil
}

// HasAttributeContainers determines if the store contains any container of
// the specific type.
func (store *Store) HasAttributeContainers(containerType string) (bool, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return false, err
	}

	stmt, _, err := store.conn.PrepareTransient(
		"SELECT 1 AS `present` FROM `containers` WHERE `container_type` = $type LIMIT 1")
	if err != nil {
		return false, err
	}
	stmt.SetText("$type", containerType)

	hasRow, err := stmt.Step()
	if err != nil {
		stmt.Finalize() // nolint:errcheck
		return false, err
	}
	return hasRow, stmt.Finalize()
}

// GetNumberOfAttributeContainers retrieves the number of containers of a
// specific type.
func (store *Store) GetNumberOfAttributeContainers(containerType string) (int64, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return 0, err
	}
	return store.countContainers(containerType)
}

// GetSortedEvents retrieves all events in non-decreasing timestamp order,
// including events written to this store instance that are still pending a
// flush. An optional time range filters the sequence.
func (store *Store) GetSortedEvents(timeRange *TimeRange) (*EventIterator, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return nil, err
	}

	query := "SELECT sequence, json FROM `containers` WHERE `container_type` = $type"
	if timeRange != nil {
		query += " AND `timestamp` >= $start AND `timestamp` < $end"
	}
	query += " ORDER BY `timestamp`, `sequence`"

	stmt, _, err := store.conn.PrepareTransient(query)
	if err != nil {
		return nil, err
	}
	stmt.SetText("$type", ContainerTypeEvent)
	if timeRange != nil {
		stmt.SetInt64("$start", timeRange.Start)
		stmt.SetInt64("$end", timeRange.End)
	}

	iterator := &ContainerIterator{store: store, stmt: stmt, containerType: ContainerTypeEvent}
	store.iterators[iterator] = true
	return &EventIterator{containers: iterator}, nil
}

// GetSessions retrieves the sessions of the store by pairing the aligned
// session start, configuration and completion container streams. The
// returned sequence is lazy and single-pass.
func (store *Store) GetSessions() (*SessionIterator, error) {
	if err := store.raiseIfNotReadable(); err != nil {
		return nil, err
	}

	starts, err := store.GetAttributeContainers(ContainerTypeSessionStart)
	if err != nil {
		return nil, err
	}
	completions, err := store.GetAttributeContainers(ContainerTypeSessionCompletion)
	if err != nil {
		return nil, err
	}

	// Older stores predate session configuration containers, the stream is
	// only consumed if it exists at all.
	var configurations *ContainerIterator
	hasConfigurations, err := store.HasAttributeContainers(ContainerTypeSessionConfiguration)
	if err != nil {
		return nil, err
	}
	if hasConfigurations {
		configurations, err = store.GetAttributeContainers(ContainerTypeSessionConfiguration)
		if err != nil {
			return nil, err
		}
	}

	return &SessionIterator{
		starts:         starts,
		completions:    completions,
		configurations: configurations,
		lastSession:    store.lastSession,
	}, nil
}

// WriteSessionStart writes session start information. It fails if the store
// is not a session store.
func (store *Store) WriteSessionStart(sessionStart *SessionStart) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	if store.storageType != StorageTypeSession {
		return errors.Wrapf(ErrInvalidContainerType, "session start not supported by %s store", store.storageType)
	}
	return store.writeNewAttributeContainer(sessionStart)
}

// WriteSessionConfiguration writes session configuration information. It
// fails if the store is not a session store. Stores that already carry legacy
// system configuration containers skip the write.
func (store *Store) WriteSessionConfiguration(sessionConfiguration *SessionConfiguration) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	if store.storageType != StorageTypeSession {
		return errors.Wrapf(ErrInvalidContainerType, "session configuration not supported by %s store", store.storageType)
	}

	hasSystemConfiguration, err := store.HasAttributeContainers(ContainerTypeSystemConfiguration)
	if err != nil {
		return err
	}
	if hasSystemConfiguration {
		return nil
	}
	return store.writeNewAttributeContainer(sessionConfiguration)
}

// WriteSessionCompletion writes session completion information. It fails if
// the store is not a session store.
func (store *Store) WriteSessionCompletion(sessionCompletion *SessionCompletion) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	if store.storageType != StorageTypeSession {
		return errors.Wrapf(ErrInvalidContainerType, "session completion not supported by %s store", store.storageType)
	}
	return store.writeNewAttributeContainer(sessionCompletion)
}

// WriteTaskStart writes task start information. It fails if the store is not
// a task store.
func (store *Store) WriteTaskStart(taskStart *TaskStart) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	if store.storageType != StorageTypeTask {
		return errors.Wrapf(ErrInvalidContainerType, "task start not supported by %s store", store.storageType)
	}
	return store.writeNewAttributeContainer(taskStart)
}

// WriteTaskCompletion writes task completion information. It fails if the
// store is not a task store.
func (store *Store) WriteTaskCompletion(taskCompletion *TaskCompletion) error {
	if err := store.raiseIfNotWritable(); err != nil {
		return err
	}
	if store.storageType != StorageTypeTask {
		return errors.Wrapf(ErrInvalidContainerType, "task completion not supported by %s store", store.storageType)
	}
	return store.writeNewAttributeContainer(taskCompletion)
}

// ReadSystemConfiguration reads legacy system configuration containers into a
// knowledge base. Kept for backwards compatibility with older session stores
// that do not store system configuration as part of the session
// configuration.
func (store *Store) ReadSystemConfiguration(knowledgeBase KnowledgeBase) error {
	hasSystemConfiguration, err := store.HasAttributeContainers(ContainerTypeSystemConfiguration)
	if err != nil {
		return err
	}
	if !hasSystemConfiguration {
		return nil
	}

	iterator, err := store.GetAttributeContainers(ContainerTypeSystemConfiguration)
	if err != nil {
		return err
	}
	for {
		container, err := iterator.Next()
		if err != nil {
			return err
		}
		if container == nil {
			return nil
		}
		artifact := container.(*SystemConfigurationArtifact)
		if err := knowledgeBase.ReadSystemConfigurationArtifact(artifact); err != nil {
			return err
		}
	}
}

// Close finalizes open cursors, creates the per type views and closes the
// database. Operations on a closed store fail with state errors.
func (store *Store) Close() error {
	if !store.open {
		return nil
	}
	store.open = false

	for iterator := range store.iterators {
		iterator.finalize()
	}
	store.iterators = map[*ContainerIterator]bool{}

	if store.writable && store.types.changed {
		_ = store.createViews()
	}

	return store.conn.Close()
}

/* ################################
#   Intern
################################ */

func (store *Store) raiseIfNotWritable() error {
	if !store.open {
		return errors.Wrap(ErrNotWritable, "store is closed")
	}
	if !store.writable {
		return errors.Wrap(ErrNotWritable, "store is read-only")
	}
	return nil
}

func (store *Store) raiseIfNotReadable() error {
	if !store.open {
		return errors.Wrap(ErrNotReadable, "store is closed")
	}
	return nil
}

func (store *Store) writeNewAttributeContainer(container AttributeContainer) error {
	containerType := container.ContainerType()
	if !IsContainerTypeSupported(containerType, store.storageType) {
		return errors.Wrapf(ErrInvalidContainerType, "cannot write %s container to %s store",
			containerType, store.storageType)
	}

	data, err := store.serializer.Encode(container)
	if err != nil {
		return err
	}

	flaws, err := validateSchema(containerType, data)
	if err != nil {
		return errors.Wrap(err, "validation failed")
	}
	if len(flaws) > 0 {
		return fmt.Errorf("%s container could not be validated [%s]", containerType, strings.Join(flaws, ","))
	}

	var timestamp int64
	if containerType == ContainerTypeEvent {
		timestamp = gjson.GetBytes(data, "timestamp").Int()
	}

	if store.storageProfiler != nil {
		store.storageProfiler.StartTiming("write")
		defer store.storageProfiler.StopTiming("write")
	}

	stmt, err := store.conn.Prepare(
		"INSERT INTO `containers` (container_type, json, timestamp, insert_time) " +
			"VALUES ($type, $json, $timestamp, $time)")
	if err != nil {
		return errors.Wrap(err, "could not prepare insert statement")
	}
	stmt.SetText("$type", containerType)
	stmt.SetText("$json", string(data))
	stmt.SetInt64("$timestamp", timestamp)
	stmt.SetText("$time", time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	if _, err = stmt.Step(); err != nil {
		return errors.Wrap(err, "could not insert container")
	}

	container.SetIdentifier(newIdentifier(store.conn.LastInsertRowID()))

	if containerType == ContainerTypeSessionStart {
		store.lastSession++
	}

	nested := map[string]interface{}{}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	flat, err := goflatten.Flatten(nested)
	if err != nil {
		return errors.Wrap(err, "could not flatten container")
	}
	store.types.addAll(containerType, flat)

	return nil
}

func (store *Store) countContainers(containerType string) (int64, error) {
	stmt, _, err := store.conn.PrepareTransient(
		"SELECT COUNT(*) AS `count` FROM `containers` WHERE `container_type` = $type")
	if err != nil {
		return 0, err
	}
	stmt.SetText("$type", containerType)

	if _, err := stmt.Step(); err != nil {
		stmt.Finalize() // nolint:errcheck
		return 0, err
	}
	count := stmt.GetInt64("count")
	return count, stmt.Finalize()
}

func (store *Store) metadata(key string) (string, error) {
	stmt, _, err := store.conn.PrepareTransient("SELECT value FROM `metadata` WHERE `key` = $key")
	if err != nil {
		return "", err
	}
	stmt.SetText("$key", key)

	hasRow, err := stmt.Step()
	if err != nil {
		stmt.Finalize() // nolint:errcheck
		return "", err
	}
	if !hasRow {
		stmt.Finalize() // nolint:errcheck
		return "", fmt.Errorf("missing metadata %q", key)
	}
	value := stmt.GetText("value")
	return value, stmt.Finalize()
}

func (store *Store) setMetadata(key, value string) error {
	stmt, err := store.conn.Prepare("INSERT OR REPLACE INTO `metadata` (key, value) VALUES ($key, $value)")
	if err != nil {
		return err
	}
	stmt.SetText("$key", key)
	stmt.SetText("$value", value)
	_, err = stmt.Step()
	return err
}

func (store *Store) createViews() error {
	for typeName, fields := range store.types.all() {
		err := store.exec(fmt.Sprintf("DROP VIEW IF EXISTS '%s'", typeName))
		if err != nil {
			return err
		}
		var columns []string
		for field := range fields {
			columns = append(columns, fmt.Sprintf("json_extract(json, '$.%s') as '%s'", field, field))
		}
		sort.Strings(columns)
		err = store.exec(
			fmt.Sprintf("CREATE VIEW '%s' AS SELECT %s FROM containers WHERE container_type = '%s'",
				typeName, strings.Join(columns, ", "), typeName),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) exec(query string) error {
	stmt, err := store.conn.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Step()
	if err != nil {
		return err
	}

	return stmt.Finalize()
}
