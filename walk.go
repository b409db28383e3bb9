package classify

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// WalkOption configures [WalkPaths].
type WalkOption func(*walkOptions)

type walkOptions struct {
	Suffix    string
	Recursive bool
}

// WithWalkSuffix restricts [WalkPaths] to files whose name ends with
// suffix (e.g. ".log"). The empty string (the default) matches every
// regular file.
func WithWalkSuffix(suffix string) WalkOption {
	return func(o *walkOptions) {
		o.Suffix = suffix
	}
}

// WithWalkRecursive makes [WalkPaths] descend into subdirectories. The
// default walks only the immediate contents of root.
func WithWalkRecursive() WalkOption {
	return func(o *walkOptions) {
		o.Recursive = true
	}
}

// WalkPaths collects the paths of regular files under root, suitable
// as input to [Pool.FindTypes]. It is not part of the core dispatcher
// -- FindTypes takes a plain slice of strings and does no filesystem
// I/O of its own -- but every realistic caller needs some way to turn
// a directory into that slice, so this is provided as a convenience
// built on the standard library's filepath.WalkDir.
//
// Symbolic links are skipped entirely: neither followed nor reported.
func WalkPaths(root string, opts ...WalkOption) ([]string, error) {
	cfg := walkOptions{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var paths []string

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && !cfg.Recursive {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if cfg.Suffix != "" && !strings.HasSuffix(path, cfg.Suffix) {
			return nil
		}

		paths = append(paths, path)

		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	return paths, nil
}
