// =======================
// hunt/report.go
// =======================

package hunt

import (
	"encoding/json"
	"fmt"
	"io"
)

// TextSink prints matches as "<candidate> --> <digest>" and progress
// markers as "At <count>".
type TextSink struct {
	w   io.Writer
	err error
}

// NewTextSink writes plain text lines to w.
func NewTextSink(w io.Writer) *TextSink { return &TextSink{w: w} }

func (t *TextSink) Match(m Match) {
	t.printf("%s --> %s\n", m.Candidate, m.Digest)
}

func (t *TextSink) Progress(p Progress) {
	t.printf("At %s\n", FormatCount(p.Iterations))
}

// Err returns the first write error, if any.
func (t *TextSink) Err() error { return t.err }

func (t *TextSink) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	if _, err := fmt.Fprintf(t.w, format, args...); err != nil {
		t.err = fmt.Errorf("write output: %w", err)
	}
}

// JSONSink writes one JSON object per event.
type JSONSink struct {
	enc *json.Encoder
	err error
}

// NewJSONSink writes newline-delimited JSON events to w.
func NewJSONSink(w io.Writer) *JSONSink { return &JSONSink{enc: json.NewEncoder(w)} }

type jsonEvent struct {
	Type     string    `json:"type"`
	Match    *Match    `json:"match,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
	Summary  *Summary  `json:"summary,omitempty"`
}

func (j *JSONSink) Match(m Match)       { j.encode(jsonEvent{Type: "match", Match: &m}) }
func (j *JSONSink) Progress(p Progress) { j.encode(jsonEvent{Type: "progress", Progress: &p}) }

// Finish writes the run summary as the last event.
func (j *JSONSink) Finish(s Summary) error {
	j.encode(jsonEvent{Type: "summary", Summary: &s})
	return j.err
}

// Err returns the first encoding or write error, if any.
func (j *JSONSink) Err() error { return j.err }

func (j *JSONSink) encode(ev jsonEvent) {
	if j.err != nil {
		return
	}
	if err := j.enc.Encode(ev); err != nil {
		j.err = fmt.Errorf("JSON encoding failed: %w", err)
	}
}

// Collector keeps every event in memory.
type Collector struct {
	Found   []Match
	Markers []Progress
}

func (c *Collector) Match(m Match)       { c.Found = append(c.Found, m) }
func (c *Collector) Progress(p Progress) { c.Markers = append(c.Markers, p) }

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

func (ms MultiSink) Match(m Match) {
	for _, s := range ms {
		s.Match(m)
	}
}

func (ms MultiSink) Progress(p Progress) {
	for _, s := range ms {
		s.Progress(p)
	}
}

func (ms MultiSink) Chunk(total uint64) {
	for _, s := range ms {
		if obs, ok := s.(ChunkObserver); ok {
			obs.Chunk(total)
		}
	}
}

// FormatCount renders whole millions as "<n>M", e.g. 10000000 as "10M".
func FormatCount(n uint64) string {
	if n != 0 && n%1_000_000 == 0 {
		return fmt.Sprintf("%dM", n/1_000_000)
	}
	return fmt.Sprintf("%d", n)
}
