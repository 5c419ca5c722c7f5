package diagfmt

import (
	"path/filepath"

	"ember/internal/source"
)

// autoPathLimit: более длинные абсолютные пути в режиме auto сокращаются до имени файла
const autoPathLimit = 40

func formatPath(f *source.File, mode PathMode, fs *source.FileSet) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeRelative:
		return f.RelPath(fs.BaseDir())
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		if len(f.Path) < autoPathLimit || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return source.BaseName(f.Path)
	}
}

// fileOf возвращает файл span'а, если он есть в FileSet.
func fileOf(fs *source.FileSet, span source.Span) (*source.File, bool) {
	if fs == nil || int64(span.File) >= int64(fs.Len()) {
		return nil, false
	}
	return fs.Get(span.File), true
}
