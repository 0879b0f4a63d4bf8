package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceKind enumerates where a contract is read from.
type SourceKind string

const (
	SourceKindEmbedded SourceKind = "embedded"
	SourceKindFile     SourceKind = "file"
	SourceKindFS       SourceKind = "fs"
)

// Source identifies where a contract document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

type embeddedSource struct{}

func (embeddedSource) Kind() SourceKind { return SourceKindEmbedded }
func (embeddedSource) Location() string { return defaultContractPath }

// SourceEmbedded addresses the contract compiled into the binary.
func SourceEmbedded() Source {
	return embeddedSource{}
}

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

// SourceFromFile addresses a contract on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

// SourceFromFS addresses a contract inside the fs.FS passed via
// WithFileSystem.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// LoaderOption configures Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	fsys     fs.FS
	validate bool
}

// WithFileSystem supplies the fs.FS used by SourceFromFS.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(o *loaderOptions) {
		o.fsys = fsys
	}
}

// WithValidation toggles kin-openapi document validation. Enabled by default.
func WithValidation(enabled bool) LoaderOption {
	return func(o *loaderOptions) {
		o.validate = enabled
	}
}

func readSource(ctx context.Context, src Source, opts loaderOptions) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindEmbedded:
		return DefaultContract(), nil
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi loader: read file %q: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindFS:
		if opts.fsys == nil {
			return nil, errors.New("openapi loader: fs source requires WithFileSystem")
		}
		data, err := fs.ReadFile(opts.fsys, src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi loader: read fs %q: %w", src.Location(), err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
}
