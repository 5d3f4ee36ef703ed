package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID is the standardized structured logging key for scan session identifiers.
	FieldSessionID = "session_id"
	// FieldEventType is the standardized structured logging key for event classification.
	FieldEventType = "event_type"
	// FieldEntryID is the standardized structured logging key for catalog entry identifiers.
	FieldEntryID = "entry_id"
)
