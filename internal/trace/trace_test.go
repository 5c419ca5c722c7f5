package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"stage", LevelStage, false},
		{"FILE", LevelFile, false},
		{"debug", LevelDebug, false},
		{"phase", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelStage.ShouldEmit(ScopeFile) {
		t.Error("stage level must not emit file scope")
	}
	if !LevelFile.ShouldEmit(ScopeStage) {
		t.Error("file level must emit stage scope")
	}
	if !LevelDebug.ShouldEmit(ScopeItem) {
		t.Error("debug level must emit item scope")
	}
	if LevelOff.ShouldEmit(ScopeCommand) {
		t.Error("off must emit nothing")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("tracer at level off must be disabled")
	}
	sp := Begin(tr, ScopeCommand, "parse", 0)
	if d := sp.End(""); d != 0 {
		t.Fatalf("nop span duration = %v", d)
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelStage, Output: &buf, Format: FormatText, RunID: "0123456789abcdef"})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeCommand, "parse", 0)
	child := Begin(tr, ScopeStage, "lex", root.ID())
	Begin(tr, ScopeFile, "file:a.em", child.ID()).End("")
	child.WithExtra("tokens", "12").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "#1 01234567 → parse") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "#2 01234567   → lex") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "← lex (ok)") || !strings.HasSuffix(lines[2], "{tokens=12}") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON, "run-1")
	Point(tr, ScopeItem, "item", "fun main", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v (%q)", err, buf.String())
	}
	if got["run_id"] != "run-1" || got["kind"] != "point" || got["scope"] != "item" {
		t.Errorf("unexpected event: %v", got)
	}
	if got["detail"] != "fun main" {
		t.Errorf("detail = %v", got["detail"])
	}
}

func TestStreamDropsAfterClose(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText, "")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeCommand, "late", "", 0)
	if buf.Len() != 0 {
		t.Fatalf("wrote after close: %q", buf.String())
	}
}

func TestRingWrapsInOrder(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug, "r")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeItem, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	if snap[2].Seq != 5 {
		t.Errorf("last seq = %d, want 5", snap[2].Seq)
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestNewGeneratesRunID(t *testing.T) {
	tr, err := New(Config{Level: LevelStage, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.RunID()) != 36 {
		t.Fatalf("run id = %q, want uuid", tr.RunID())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	tr := NewRingTracer(4, LevelDebug, "x")
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	sp := Begin(tr, ScopeCommand, "cmd", 0)
	ctx = WithSpan(ctx, sp)
	if ParentID(ctx) != sp.ID() {
		t.Fatalf("ParentID = %d, want %d", ParentID(ctx), sp.ID())
	}
}
