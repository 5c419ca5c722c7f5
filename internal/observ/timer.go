// Package observ collects wall-clock timings for the --timings flag.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase is one measured stage.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer records stage durations. Safe for concurrent use, the driver times
// files from several goroutines.
type Timer struct {
	mu      sync.Mutex
	created time.Time
	phases  []Phase
	now     func() time.Time
}

func NewTimer() *Timer {
	return &Timer{created: time.Now(), phases: make([]Phase, 0, 8), now: time.Now}
}

// Begin starts a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End finishes the phase. Unknown or already finished handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].done {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
	p.done = true
}

// Measure times fn as a phase and returns its error.
func (t *Timer) Measure(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Report summarizes finished phases. WallMS is the time since NewTimer,
// not the sum of phases: phases may overlap.
type Report struct {
	WallMS float64       `json:"wall_ms" yaml:"wall_ms"`
	Phases []PhaseReport `json:"phases" yaml:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{WallMS: ms(t.now().Sub(t.created))}
	for _, p := range t.phases {
		if !p.done {
			continue
		}
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms(p.Dur), Note: p.Note})
	}
	return r
}

// WriteSummary prints the report as an aligned table.
func (t *Timer) WriteSummary(w io.Writer) error {
	r := t.Report()
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-24s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-24s %8.2f ms\n", "wall", r.WallMS)
	return err
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
