package diag

import (
	"testing"

	"ember/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		added := b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if b.Len() != 2 || !b.Full() {
		t.Fatalf("len %d full %v", b.Len(), b.Full())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(New(SevInfo, UnknownCode, source.Span{}, "i"))
	}
	if unlimited.Len() != 100 || unlimited.HasErrors() {
		t.Fatalf("unlimited bag: len %d errors %v", unlimited.Len(), unlimited.HasErrors())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, SynUnexpectedToken, source.Span{File: 0, Start: 3, End: 4}, "w"))
	b.Add(NewError(LexBadEscape, source.Span{File: 0, Start: 3, End: 4}, "e"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("dedup left %d items", b.Len())
	}
	b.Sort()
	got := b.Items()
	if got[0].Code != LexBadEscape || got[1].Severity != SevWarning || got[2].Primary.File != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(NewBagReporter(bag))
	d := NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "unrecognized character '$'")
	r.Report(d)
	r.Report(d)
	r.Report(NewError(LexUnknownChar, source.Span{Start: 4, End: 5}, "unrecognized character '$'"))
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexBadEscape:        "LEX1005",
		SynUnexpectedEOF:    "SYN2002",
		IOLoadFileError:     "IO4001",
		ProjManifestInvalid: "PRJ5001",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown codes must fall back to the generic title")
	}
}
