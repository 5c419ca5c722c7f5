package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

// Bump whenever tokenPayload or the token stream of any input changes.
const tokenCacheSchema uint16 = 1

// TokenCache stores token streams on disk keyed by file content hash.
// Entries are written atomically so concurrent workers can share a cache.
type TokenCache struct {
	dir    string
	hits   atomic.Uint64
	misses atomic.Uint64
}

type cachedError struct {
	Kind uint8           `msgpack:"kind"`
	Byte byte            `msgpack:"byte"`
	Span source.Span     `msgpack:"span"`
	Loc  source.Location `msgpack:"loc"`
}

type tokenPayload struct {
	Schema    uint16        `msgpack:"schema"`
	Directive string        `msgpack:"directive"`
	Tokens    []token.Token `msgpack:"tokens"`
	Errors    []cachedError `msgpack:"errors"`
}

// DefaultCacheDir returns $XDG_CACHE_HOME/ember or ~/.cache/ember.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "ember"), nil
}

// OpenTokenCache creates dir if needed.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tokens"), 0o755); err != nil {
		return nil, fmt.Errorf("open token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

func (c *TokenCache) Dir() string { return c.dir }

// Stats returns hit and miss counts since open.
func (c *TokenCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

func (c *TokenCache) pathFor(f *source.File) string {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], tokenCacheSchema)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(f.Hash[:])
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(h.Sum(nil))+".mp")
}

// Get loads the cached stream for f. Spans and locations are rebound to f,
// so a hit for identical content under another path is still correct.
func (c *TokenCache) Get(f *source.File) (toks []token.Token, errs []*lexer.Error, directive string, ok bool, err error) {
	if c == nil {
		return nil, nil, "", false, nil
	}
	data, err := os.ReadFile(c.pathFor(f))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.misses.Add(1)
			return nil, nil, "", false, nil
		}
		return nil, nil, "", false, err
	}
	var p tokenPayload
	if err := msgpack.Unmarshal(data, &p); err != nil || p.Schema != tokenCacheSchema {
		// битая или старая запись: считаем промахом, перезапишется
		c.misses.Add(1)
		return nil, nil, "", false, nil
	}
	for i := range p.Tokens {
		p.Tokens[i].Span.File = f.ID
		p.Tokens[i].Loc.File = f.Path
	}
	errs = make([]*lexer.Error, len(p.Errors))
	for i, ce := range p.Errors {
		ce.Span.File = f.ID
		ce.Loc.File = f.Path
		errs[i] = &lexer.Error{Kind: lexer.ErrorKind(ce.Kind), Byte: ce.Byte, Span: ce.Span, Loc: ce.Loc}
	}
	c.hits.Add(1)
	return p.Tokens, errs, p.Directive, true, nil
}

// Put stores the stream for f.
func (c *TokenCache) Put(f *source.File, toks []token.Token, errs []*lexer.Error, directive string) error {
	if c == nil {
		return nil
	}
	p := tokenPayload{Schema: tokenCacheSchema, Directive: directive, Tokens: toks}
	for _, e := range errs {
		p.Errors = append(p.Errors, cachedError{Kind: uint8(e.Kind), Byte: e.Byte, Span: e.Span, Loc: e.Loc})
	}
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encode token cache entry: %w", err)
	}

	target := c.pathFor(f)
	tmp, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp.Name(), target)
}

// Clear removes every cached entry.
func (c *TokenCache) Clear() error {
	if c == nil {
		return nil
	}
	dir := filepath.Join(c.dir, "tokens")
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
