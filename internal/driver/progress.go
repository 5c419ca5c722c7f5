package driver

// ProgressStatus is the state a file moved into.
type ProgressStatus uint8

const (
	ProgressQueued ProgressStatus = iota
	ProgressWorking
	ProgressDone
)

func (s ProgressStatus) String() string {
	switch s {
	case ProgressQueued:
		return "queued"
	case ProgressWorking:
		return "working"
	case ProgressDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressEvent describes one file changing state during a *Dir run.
// Errors is only meaningful with ProgressDone.
type ProgressEvent struct {
	Path   string
	Index  int
	Total  int
	Status ProgressStatus
	Errors int
	Cached bool
}

// ProgressFunc receives events from worker goroutines; it must be safe
// for concurrent use.
type ProgressFunc func(ProgressEvent)

func (o Options) report(ev ProgressEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
