package source

import (
	"fmt"
)

type Span struct {
	File  FileID `json:"file" msgpack:"file"`
	Start uint32 `json:"start" msgpack:"start"` // в байтах включительно
	End   uint32 `json:"end" msgpack:"end"`     // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
