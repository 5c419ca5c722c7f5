package trace

import (
	"io"
	"sync"
	"sync/atomic"
)

// StreamTracer writes events to an io.Writer as soon as they arrive.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	runID  string
	seq    atomic.Uint64
	closed bool
}

func NewStreamTracer(w io.Writer, level Level, format Format, runID string) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format, runID: runID}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = t.seq.Add(1)
	ev.RunID = t.runID
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	// ошибки записи трассы не должны ломать разбор
	_, _ = t.w.Write(data)
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	if s, ok := t.w.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
// Emit after Close is dropped.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
func (t *StreamTracer) RunID() string { return t.runID }
