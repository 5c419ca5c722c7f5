package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event.
// Lower values are coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one cli invocation
	ScopeStage                    // tokenize / parse
	ScopeFile                     // one source file
	ScopeItem                     // one top-level declaration
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeStage:
		return "stage"
	case ScopeFile:
		return "file"
	case ScopeItem:
		return "item"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer on Emit
	RunID    string // assigned by the tracer on Emit
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // "parse", "file:examples/main.em", ...
	Detail   string
	Elapsed  time.Duration // only on KindSpanEnd
	Extra    map[string]string
}
