package driver

import (
	"os"
	"path/filepath"
	"testing"

	"ember/internal/source"
)

func TestTokenCacheRebindsToFile(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	content := []byte("#!ember\n@a = 'x';\n")
	first := fs.Get(fs.AddVirtual("one.em", content))
	second := fs.Get(fs.AddVirtual("two.em", content))

	toks, errs, directive := lexAll(first)
	if err := cache.Put(first, toks, errs, directive); err != nil {
		t.Fatal(err)
	}

	got, gotErrs, gotDirective, ok, err := cache.Get(second)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if gotDirective != "#!ember" || len(gotErrs) != 0 {
		t.Errorf("directive=%q errs=%v", gotDirective, gotErrs)
	}
	if len(got) != len(toks) {
		t.Fatalf("len = %d, want %d", len(got), len(toks))
	}
	for i := range got {
		if got[i].Span.File != second.ID || got[i].Loc.File != "two.em" {
			t.Fatalf("token %d not rebound: %+v", i, got[i])
		}
		if got[i].Kind != toks[i].Kind || got[i].Text != toks[i].Text || got[i].Loc.Line != toks[i].Loc.Line {
			t.Fatalf("token %d = %+v, want %+v", i, got[i], toks[i])
		}
	}
}

func TestTokenCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.em", []byte("@a = 1;")))
	if err := os.WriteFile(cache.pathFor(f), []byte{0xc1, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, ok, err := cache.Get(f); ok || err != nil {
		t.Fatalf("ok=%v err=%v, want clean miss", ok, err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cache.Dir(), "tokens")); err != nil {
		t.Fatalf("tokens dir gone after Clear: %v", err)
	}
}

func TestNilTokenCache(t *testing.T) {
	var c *TokenCache
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.em", nil))
	if _, _, _, ok, err := c.Get(f); ok || err != nil {
		t.Fatal("nil cache must miss")
	}
	if err := c.Put(f, nil, nil, ""); err != nil {
		t.Fatal(err)
	}
}
