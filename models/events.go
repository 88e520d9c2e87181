package models

// EventType tags a pipeline event for the streaming delivery surface.
type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is the unit of the streaming surface. Exactly one terminal
// event (complete or error) is produced per pipeline run.
type Event struct {
	Type    EventType `json:"-"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Result  *Summary  `json:"result,omitempty"`
}

// Terminal reports whether no further events follow this one.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

func Progress(message string) Event {
	return Event{Type: EventProgress, Message: message}
}

func Complete(result *Summary) Event {
	return Event{Type: EventComplete, Result: result}
}

func ErrorEvent(message string) Event {
	return Event{Type: EventError, Error: message}
}
