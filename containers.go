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
	"time"

	"github.com/google/uuid"
)

// Storage types. A task store holds the partial results of one extraction
// worker, a session store is the durable result of a full run.
const (
	StorageTypeSession = "session"
	StorageTypeTask    = "task"
)

// Container types supported by the store.
const (
	ContainerTypeAnalysisReport       = "analysis_report"
	ContainerTypeEvent                = "event"
	ContainerTypeEventData            = "event_data"
	ContainerTypeEventDataStream      = "event_data_stream"
	ContainerTypeEventSource          = "event_source"
	ContainerTypeEventTag             = "event_tag"
	ContainerTypeExtractionWarning    = "extraction_warning"
	ContainerTypePreprocessingWarning = "preprocessing_warning"
	ContainerTypeRecoveryWarning      = "recovery_warning"
	ContainerTypeSessionCompletion    = "session_completion"
	ContainerTypeSessionConfiguration = "session_configuration"
	ContainerTypeSessionStart         = "session_start"
	ContainerTypeSystemConfiguration  = "system_configuration"
	ContainerTypeTaskCompletion       = "task_completion"
	ContainerTypeTaskStart            = "task_start"
)

// AttributeContainer is a typed record that can be persisted by a store. The
// identifier is assigned by the store on first write and is empty before
// that.
type AttributeContainer interface {
	ContainerType() string
	Identifier() Identifier
	SetIdentifier(identifier Identifier)
}

// containerIdentifier holds the store assigned identifier. It is embedded by
// every container and excluded from serialization.
type containerIdentifier struct {
	identifier Identifier
}

func (c *containerIdentifier) Identifier() Identifier { return c.identifier }

func (c *containerIdentifier) SetIdentifier(identifier Identifier) { c.identifier = identifier }

var sessionOnlyContainerTypes = map[string]bool{
	ContainerTypeSessionCompletion:    true,
	ContainerTypeSessionConfiguration: true,
	ContainerTypeSessionStart:         true,
	ContainerTypeSystemConfiguration:  true,
}

var taskOnlyContainerTypes = map[string]bool{
	ContainerTypeTaskCompletion: true,
	ContainerTypeTaskStart:      true,
}

// SupportedContainerTypes lists every container type known to the store.
func SupportedContainerTypes() []string {
	return []string{
		ContainerTypeAnalysisReport,
		ContainerTypeEvent,
		ContainerTypeEventData,
		ContainerTypeEventDataStream,
		ContainerTypeEventSource,
		ContainerTypeEventTag,
		ContainerTypeExtractionWarning,
		ContainerTypePreprocessingWarning,
		ContainerTypeRecoveryWarning,
		ContainerTypeSessionCompletion,
		ContainerTypeSessionConfiguration,
		ContainerTypeSessionStart,
		ContainerTypeSystemConfiguration,
		ContainerTypeTaskCompletion,
		ContainerTypeTaskStart,
	}
}

// IsContainerTypeSupported reports whether containers of the given type may
// be written to a store of the given storage type.
func IsContainerTypeSupported(containerType, storageType string) bool {
	switch storageType {
	case StorageTypeSession:
		return !taskOnlyContainerTypes[containerType]
	case StorageTypeTask:
		return !sessionOnlyContainerTypes[containerType]
	}
	return false
}

// newContainerOfType returns an empty container for a type tag, or nil for
// unknown types. Used to decode serialized containers.
func newContainerOfType(containerType string) AttributeContainer {
	switch containerType {
	case ContainerTypeAnalysisReport:
		return &AnalysisReport{}
	case ContainerTypeEvent:
		return &EventObject{}
	case ContainerTypeEventData:
		return &EventData{}
	case ContainerTypeEventDataStream:
		return &EventDataStream{}
	case ContainerTypeEventSource:
		return &EventSource{}
	case ContainerTypeEventTag:
		return &EventTag{}
	case ContainerTypeExtractionWarning:
		return &ExtractionWarning{}
	case ContainerTypePreprocessingWarning:
		return &PreprocessingWarning{}
	case ContainerTypeRecoveryWarning:
		return &RecoveryWarning{}
	case ContainerTypeSessionCompletion:
		return &SessionCompletion{}
	case ContainerTypeSessionConfiguration:
		return &SessionConfiguration{}
	case ContainerTypeSessionStart:
		return &SessionStart{}
	case ContainerTypeSystemConfiguration:
		return &SystemConfigurationArtifact{}
	case ContainerTypeTaskCompletion:
		return &TaskCompletion{}
	case ContainerTypeTaskStart:
		return &TaskStart{}
	}
	return nil
}

// EventObject is a single dated entry on the timeline. It references its
// event data by store identifier.
type EventObject struct {
	containerIdentifier
	Timestamp           int64       `json:"timestamp,omitempty"`
	TimestampDesc       string      `json:"timestamp_desc,omitempty"`
	EventDataIdentifier *Identifier `json:"_event_data_identifier,omitempty"`
}

func (*EventObject) ContainerType() string { return ContainerTypeEvent }

// NewEventObject creates an event with a timestamp in microseconds since the
// POSIX epoch and a description of what the timestamp means.
func NewEventObject(timestamp int64, timestampDesc string) *EventObject {
	return &EventObject{Timestamp: timestamp, TimestampDesc: timestampDesc}
}

// EventData holds the parsed attributes shared by one or more events.
type EventData struct {
	containerIdentifier
	DataType                  string                 `json:"data_type,omitempty"`
	ParserChain               string                 `json:"_parser_chain,omitempty"`
	Attributes                map[string]interface{} `json:"attributes,omitempty"`
	EventDataStreamIdentifier *Identifier            `json:"_event_data_stream_identifier,omitempty"`
}

func (*EventData) ContainerType() string { return ContainerTypeEventData }

// EventDataStream describes the data stream the event data was extracted
// from.
type EventDataStream struct {
	containerIdentifier
	PathSpec   string `json:"path_spec,omitempty"`
	MD5Hash    string `json:"md5_hash,omitempty"`
	SHA1Hash   string `json:"sha1_hash,omitempty"`
	SHA256Hash string `json:"sha256_hash,omitempty"`
}

func (*EventDataStream) ContainerType() string { return ContainerTypeEventDataStream }

// EventSource points at a source that still needs to be processed.
type EventSource struct {
	containerIdentifier
	DataType      string `json:"data_type,omitempty"`
	FileEntryType string `json:"file_entry_type,omitempty"`
	PathSpec      string `json:"path_spec,omitempty"`
}

func (*EventSource) ContainerType() string { return ContainerTypeEventSource }

// EventTag labels an event, referenced by store identifier. Tagging never
// modifies the event itself.
type EventTag struct {
	containerIdentifier
	EventIdentifier *Identifier `json:"_event_identifier,omitempty"`
	Labels          []string    `json:"labels,omitempty"`
}

func (*EventTag) ContainerType() string { return ContainerTypeEventTag }

// AnalysisReport is the result of an analysis plugin.
type AnalysisReport struct {
	containerIdentifier
	PluginName      string           `json:"plugin_name,omitempty"`
	Text            string           `json:"text,omitempty"`
	TimeCompiled    int64            `json:"time_compiled,omitempty"`
	AnalysisCounter map[string]int64 `json:"analysis_counter,omitempty"`
}

func (*AnalysisReport) ContainerType() string { return ContainerTypeAnalysisReport }

// ExtractionWarning describes a problem during extraction.
type ExtractionWarning struct {
	containerIdentifier
	Message     string `json:"message,omitempty"`
	ParserChain string `json:"parser_chain,omitempty"`
	PathSpec    string `json:"path_spec,omitempty"`
}

func (*ExtractionWarning) ContainerType() string { return ContainerTypeExtractionWarning }

// RecoveryWarning describes a problem during recovery of deleted data.
type RecoveryWarning struct {
	containerIdentifier
	Message     string `json:"message,omitempty"`
	ParserChain string `json:"parser_chain,omitempty"`
	PathSpec    string `json:"path_spec,omitempty"`
}

func (*RecoveryWarning) ContainerType() string { return ContainerTypeRecoveryWarning }

// PreprocessingWarning describes a problem during preprocessing.
type PreprocessingWarning struct {
	containerIdentifier
	Message  string `json:"message,omitempty"`
	Plugin   string `json:"plugin,omitempty"`
	PathSpec string `json:"path_spec,omitempty"`
}

func (*PreprocessingWarning) ContainerType() string { return ContainerTypePreprocessingWarning }

// SessionStart marks the beginning of a session. The session identifier links
// it to the matching configuration and completion containers.
type SessionStart struct {
	containerIdentifier
	SessionIdentifier string `json:"identifier,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	ProductVersion    string `json:"product_version,omitempty"`
	Timestamp         int64  `json:"timestamp,omitempty"`
}

func (*SessionStart) ContainerType() string { return ContainerTypeSessionStart }

// NewSessionStart creates a session start with a fresh session identifier.
func NewSessionStart() *SessionStart {
	return &SessionStart{
		SessionIdentifier: uuid.New().String(),
		ProductName:       "timelinestore",
		Timestamp:         time.Now().UnixMicro(),
	}
}

// SessionConfiguration holds the settings a session was run with.
type SessionConfiguration struct {
	containerIdentifier
	SessionIdentifier    string   `json:"identifier,omitempty"`
	ArtifactFilters      []string `json:"artifact_filters,omitempty"`
	CommandLineArguments string   `json:"command_line_arguments,omitempty"`
	DebugMode            bool     `json:"debug_mode,omitempty"`
	EnabledParserNames   []string `json:"enabled_parser_names,omitempty"`
	FilterFile           string   `json:"filter_file,omitempty"`
	PreferredEncoding    string   `json:"preferred_encoding,omitempty"`
	PreferredTimeZone    string   `json:"preferred_time_zone,omitempty"`
}

func (*SessionConfiguration) ContainerType() string { return ContainerTypeSessionConfiguration }

// SessionCompletion marks the end of a session. A session without a
// completion container was interrupted.
type SessionCompletion struct {
	containerIdentifier
	SessionIdentifier string           `json:"identifier,omitempty"`
	Aborted           bool             `json:"aborted,omitempty"`
	ParsersCounter    map[string]int64 `json:"parsers_counter,omitempty"`
	Timestamp         int64            `json:"timestamp,omitempty"`
}

func (*SessionCompletion) ContainerType() string { return ContainerTypeSessionCompletion }

// UserAccount is a user known to the examined system.
type UserAccount struct {
	Identifier    string `json:"identifier,omitempty"`
	Username      string `json:"username,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	UserDirectory string `json:"user_directory,omitempty"`
}

// SystemConfigurationArtifact holds system specific configuration data, for
// example the hostname and user accounts of the examined system.
type SystemConfigurationArtifact struct {
	containerIdentifier
	Hostname               string        `json:"hostname,omitempty"`
	OperatingSystem        string        `json:"operating_system,omitempty"`
	OperatingSystemProduct string        `json:"operating_system_product,omitempty"`
	OperatingSystemVersion string        `json:"operating_system_version,omitempty"`
	Codepage               string        `json:"code_page,omitempty"`
	TimeZone               string        `json:"time_zone,omitempty"`
	UserAccounts           []UserAccount `json:"user_accounts,omitempty"`
}

func (*SystemConfigurationArtifact) ContainerType() string { return ContainerTypeSystemConfiguration }

// TaskStart marks the beginning of a task within a session.
type TaskStart struct {
	containerIdentifier
	TaskIdentifier    string `json:"identifier,omitempty"`
	SessionIdentifier string `json:"session_identifier,omitempty"`
	Timestamp         int64  `json:"timestamp,omitempty"`
}

func (*TaskStart) ContainerType() string { return ContainerTypeTaskStart }

// NewTaskStart creates a task start with a fresh task identifier for the
// given session.
func NewTaskStart(sessionIdentifier string) *TaskStart {
	return &TaskStart{
		TaskIdentifier:    uuid.New().String(),
		SessionIdentifier: sessionIdentifier,
		Timestamp:         time.Now().UnixMicro(),
	}
}

// TaskCompletion marks the end of a task.
type TaskCompletion struct {
	containerIdentifier
	TaskIdentifier    string `json:"identifier,omitempty"`
	SessionIdentifier string `json:"session_identifier,omitempty"`
	Aborted           bool   `json:"aborted,omitempty"`
	Timestamp         int64  `json:"timestamp,omitempty"`
}

func (*TaskCompletion) ContainerType() string { return ContainerTypeTaskCompletion }
