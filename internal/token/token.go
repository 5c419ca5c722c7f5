package token

import (
	"ember/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind            `json:"kind" msgpack:"kind"`
	Text string          `json:"text,omitempty" msgpack:"text"`
	Span source.Span     `json:"span" msgpack:"span"`
	Loc  source.Location `json:"loc" msgpack:"loc"`
}

// Describe renders the token for diagnostics: the kind plus its text when it
// has any.
func (t Token) Describe() string {
	if t.Text == "" || t.Kind == EOF {
		return t.Kind.String()
	}
	return t.Kind.String() + " \"" + t.Text + "\""
}
