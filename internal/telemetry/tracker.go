package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iancoleman/orderedmap"
)

// tracker records events
type tracker interface {
	Track(event event)
	Close()
}

type noopTracker struct{}

func (tracker *noopTracker) Track(event event) {}
func (tracker *noopTracker) Close()            {}

type stdoutTracker struct {
	w io.Writer
}

func (tracker *stdoutTracker) Track(event event) {
	out := orderedmap.New()
	out.Set("id", event.id)
	out.Set("type", event.eventType)
	out.Set("time", event.time.In(time.UTC))
	out.Set("execution_id", event.executionID)
	out.Set("command", event.command)
	out.Set("version", event.version)
	for _, d := range event.data {
		switch v := d.Value.(type) {
		case error:
			out.Set(string(d.Key), v.Error())
		default:
			out.Set(string(d.Key), v)
		}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	fmt.Fprintf(tracker.w, "telemetry: %s\n", raw)
}

func (tracker *stdoutTracker) Close() {}
