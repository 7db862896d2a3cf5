package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType names the kind of event a warning or error describes.
	FieldEventType = "event_type"
	// FieldErrorKind carries errs.Kind of the logged error.
	FieldErrorKind = "error_kind"
	// FieldErrorHint suggests what the user can do about a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSeries is the series directory a line refers to.
	FieldSeries = "series"
	// FieldEpisode is the 1-based episode number a line refers to.
	FieldEpisode = "episode"
)
