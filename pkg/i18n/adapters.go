package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
)

// SegmentAdapter loads segments keyed by locale.
type SegmentAdapter interface {
	Load(ctx context.Context) (map[string]Segments, error)
}

// Parser turns one catalog file into segments keyed by locale.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]Segments, error)
	SupportsFileExtension(ext string) bool
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data map[string]Segments
}

func (a *MapAdapter) Load(_ context.Context) (map[string]Segments, error) {
	if a.Data == nil {
		return map[string]Segments{}, nil
	}
	return a.Data, nil
}

// FSAdapter reads every supported file directly under dir in fsys. Files are
// processed in lexical order; later files override earlier keys.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter returns nil when parser or fsys is nil.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if parser == nil || fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]Segments, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(map[string]Segments)
	processed := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext == "" || !a.parser.SupportsFileExtension(ext) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		filePath := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, filePath)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}

		parsed, err := a.parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}

		for locale, segments := range parsed {
			if all[locale] == nil {
				all[locale] = make(Segments, len(segments))
			}
			maps.Copy(all[locale], segments)
		}
		processed = true
	}

	if !processed {
		return nil, fmt.Errorf("%w in %q", ErrNoSegmentFiles, a.dir)
	}
	return all, nil
}
