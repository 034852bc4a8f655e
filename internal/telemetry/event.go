package telemetry

import (
	"time"
)

type event struct {
	id          string
	eventType   EventType
	time        time.Time
	executionID string
	command     string
	version     string
	data        []EventData
}

// EventData holds additional event information
type EventData struct {
	Key   EventDataKey
	Value interface{}
}

// EventDataError creates the event data of an error
func EventDataError(err error) []EventData {
	return []EventData{{Key: EventDataKeyErr, Value: err}}
}

// EventDataStep creates the event data of a bootstrap step
func EventDataStep(step int, name string) []EventData {
	return []EventData{
		{Key: EventDataKeyStep, Value: step},
		{Key: EventDataKeyStepName, Value: name},
	}
}

// EventType is a cli event type
type EventType string

// set of supported cli event types
const (
	EventTypeCommandStart    EventType = "COMMAND_START"
	EventTypeCommandComplete EventType = "COMMAND_COMPLETE"
	EventTypeCommandError    EventType = "COMMAND_ERROR"
	EventTypeStepStart       EventType = "STEP_START"
	EventTypeStepComplete    EventType = "STEP_COMPLETE"
	EventTypeStepError       EventType = "STEP_ERROR"
)

// EventDataKey is the key of a piece of event data
type EventDataKey string

// set of event data keys
const (
	EventDataKeyErr      EventDataKey = "err"
	EventDataKeyStep     EventDataKey = "step"
	EventDataKeyStepName EventDataKey = "step_name"
)
