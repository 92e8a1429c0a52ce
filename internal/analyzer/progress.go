package analyzer

// EventKind tags one step of AnalyzeDocument's progress stream (spec §6
// "Emitted to callers": the progress event sequence an IDE or CLI
// consumes to render a status bar or spinner).
type EventKind string

const (
	EventStarted        EventKind = "started"
	EventPhaseStarted   EventKind = "phase-started"
	EventProgress       EventKind = "progress"
	EventPhaseCompleted EventKind = "phase-completed"
	EventCompleted      EventKind = "completed"
)

// Event is one progress notification. Phase is set on phase-started/
// phase-completed events; Completed/Total/Current are set on progress
// events.
type Event struct {
	Kind      EventKind
	Phase     string
	Completed int
	Total     int
	Current   string
}

// Callback receives progress events during AnalyzeDocument. A nil
// Callback is valid and simply discards every event, so callers that
// don't need progress reporting (tests, one-shot CLI runs) can pass the
// zero value.
type Callback func(Event)

func (cb Callback) emit(e Event) {
	if cb != nil {
		cb(e)
	}
}
