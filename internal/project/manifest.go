// Package project locates and decodes the ember.toml project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded ember.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Parse   ParseSection   `toml:"parse"`

	// Path and Root are filled by Load, never decoded.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type PackageSection struct {
	Name string `toml:"name"`
}

// ParseSection holds defaults for the tokenize/parse/diag commands.
// Command-line flags override these.
type ParseSection struct {
	MaxDiagnostics int      `toml:"max_diagnostics"`
	KeepGoing      bool     `toml:"keep_going"`
	Jobs           int      `toml:"jobs"` // 0 = GOMAXPROCS
	Extension      string   `toml:"extension"`
	Dirs           []string `toml:"dirs,omitempty"` // source dirs relative to Root
}

var (
	// ErrPackageSectionMissing indicates that [package] is absent.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is absent or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Default returns the manifest `ember init` writes.
func Default(name string) Manifest {
	return Manifest{
		Package: PackageSection{Name: name},
		Parse: ParseSection{
			MaxDiagnostics: 100,
			KeepGoing:      true,
			Extension:      ".em",
		},
	}
}

// Load decodes the manifest at path. Missing [parse] keys keep Default values.
// Unknown keys are an error so that typos do not pass silently.
func Load(path string) (*Manifest, error) {
	m := Default("")
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := m.Parse.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

func (p *ParseSection) validate() error {
	if p.MaxDiagnostics < 0 {
		return fmt.Errorf("[parse].max_diagnostics must be >= 0, got %d", p.MaxDiagnostics)
	}
	if p.Jobs < 0 {
		return fmt.Errorf("[parse].jobs must be >= 0, got %d", p.Jobs)
	}
	if p.Extension == "" {
		p.Extension = ".em"
	}
	if !strings.HasPrefix(p.Extension, ".") {
		p.Extension = "." + p.Extension
	}
	for _, d := range p.Dirs {
		if filepath.IsAbs(d) {
			return fmt.Errorf("[parse].dirs entry %q must be relative", d)
		}
		if rel := filepath.Clean(filepath.FromSlash(d)); rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("[parse].dirs entry %q escapes the project root", d)
		}
	}
	return nil
}

// SourceDirs returns the absolute directories to parse when no paths are given.
func (m *Manifest) SourceDirs() []string {
	if len(m.Parse.Dirs) == 0 {
		return []string{m.Root}
	}
	out := make([]string, len(m.Parse.Dirs))
	for i, d := range m.Parse.Dirs {
		out[i] = filepath.Join(m.Root, filepath.FromSlash(d))
	}
	return out
}

// ErrManifestExists is returned by Init when dir already has a manifest.
var ErrManifestExists = errors.New(ManifestName + " already exists")

// Init writes a default manifest into dir. An empty name uses the
// directory's base name.
func Init(dir, name string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	path := filepath.Join(abs, ManifestName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrManifestExists)
		}
		return "", fmt.Errorf("failed to create manifest: %w", err)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(Default(name)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
