// Package metrics records the timing and command lines of each build step
// and writes them out as a protobuf Struct in JSON form.
package metrics

import (
	"os"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// _now wraps time.Now so tests can control the clock.
var _now = func() time.Time {
	return time.Now()
}

type step struct {
	name     string
	start    time.Time
	end      time.Time
	commands []string
	err      error
	done     bool
}

// Recorder implements events.Observer. Steps nest: a step started while
// another is open is recorded on its own and closed independently.
type Recorder struct {
	buildID string
	start   time.Time
	steps   []*step
	open    []*step
}

func New() *Recorder {
	return &Recorder{
		buildID: uuid.NewString(),
		start:   _now(),
	}
}

func (r *Recorder) BuildID() string {
	return r.buildID
}

func (r *Recorder) StepStarted(name string) {
	s := &step{name: name, start: _now()}
	r.steps = append(r.steps, s)
	r.open = append(r.open, s)
}

func (r *Recorder) Command(name, cmdline string) {
	if s := r.innermost(name); s != nil {
		s.commands = append(s.commands, cmdline)
	}
}

func (r *Recorder) Note(string, string) {}

func (r *Recorder) StepFinished(name string, err error) {
	for i := len(r.open) - 1; i >= 0; i-- {
		s := r.open[i]
		if s.name != name {
			continue
		}
		s.end = _now()
		s.err = err
		s.done = true
		r.open = append(r.open[:i], r.open[i+1:]...)
		return
	}
}

func (r *Recorder) innermost(name string) *step {
	for i := len(r.open) - 1; i >= 0; i-- {
		if r.open[i].name == name {
			return r.open[i]
		}
	}
	return nil
}

func (r *Recorder) Proto() (*structpb.Struct, error) {
	var steps []interface{}
	for _, s := range r.steps {
		commands := make([]interface{}, len(s.commands))
		for i, c := range s.commands {
			commands[i] = c
		}
		entry := map[string]interface{}{
			"name":       s.name,
			"start_time": s.start.Format(time.RFC3339Nano),
			"commands":   commands,
		}
		if s.done {
			entry["real_time_ms"] = float64(s.end.Sub(s.start).Milliseconds())
		}
		if s.err != nil {
			entry["error"] = s.err.Error()
		}
		steps = append(steps, entry)
	}
	return structpb.NewStruct(map[string]interface{}{
		"build_id":   r.buildID,
		"start_time": r.start.Format(time.RFC3339Nano),
		"steps":      steps,
	})
}

// WriteFile dumps the recorded metrics to path.
func (r *Recorder) WriteFile(path string) error {
	msg, err := r.Proto()
	if err != nil {
		return err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
