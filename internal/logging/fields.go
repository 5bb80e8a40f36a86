package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType names the kind of occurrence a record describes.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldViewerID identifies a connected viewer.
	FieldViewerID = "viewer_id"
	// FieldPath is the watched file path.
	FieldPath = "path"
	// FieldPosition is the tailer cursor byte offset.
	FieldPosition = "position"
	// FieldClients is the number of registered viewers.
	FieldClients = "clients"
	// FieldLines is the size of a line batch.
	FieldLines = "lines"
	// FieldFirstLine is the first line of a batch.
	FieldFirstLine = "first_line"
)
