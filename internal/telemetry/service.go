package telemetry

import (
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service tracks telemetry events
type Service interface {
	TrackEvent(eventType EventType, data ...EventData)
	Close()
}

type service struct {
	command     string
	version     string
	executionID string
	tracker     tracker
}

// NewService creates a new telemetry service writing stdout events to w
func NewService(mode Mode, command, version string, w io.Writer) Service {
	s := service{
		command:     command,
		version:     version,
		executionID: primitive.NewObjectID().Hex(),
	}

	switch mode {
	case ModeStdout:
		s.tracker = &stdoutTracker{w}
	default:
		s.tracker = &noopTracker{}
	}

	return &s
}

// TrackEvent tracks events
func (s *service) TrackEvent(eventType EventType, data ...EventData) {
	s.tracker.Track(event{
		id:          primitive.NewObjectID().Hex(),
		eventType:   eventType,
		time:        time.Now(),
		executionID: s.executionID,
		command:     s.command,
		version:     s.version,
		data:        data,
	})
}

// Close shuts down the Service
func (s *service) Close() {
	s.tracker.Close()
}
