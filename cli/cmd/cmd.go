package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is an opened script input with the name used in diagnostics.
type source struct {
	name   string
	reader io.Reader
	close  func() error
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// repeated arguments.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens each named script once, in argument order, with
// duplicates removed by device/inode comparison. All occurrences of "-"
// collapse to a single stdin reader placed last so it reads after every
// regular file.
func openSources(names []string) ([]source, error) {
	srcs := make([]source, 0, len(names))
	seen := make(map[fileKey]struct{})
	stdin := false

	for _, name := range names {
		if name == stdinSource {
			stdin = true

			continue
		}

		src, ok, err := openUniqueFile(name, seen)
		if err != nil {
			closeSources(srcs)

			return nil, err
		}

		if ok {
			srcs = append(srcs, src)
		}
	}

	if stdin {
		srcs = append(srcs, source{
			name:   "stdin",
			reader: os.Stdin,
			close:  func() error { return nil },
		})
	}

	return srcs, nil
}

// closeSources closes every opened source, ignoring close errors.
func closeSources(srcs []source) {
	for _, src := range srcs {
		_ = src.close()
	}
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates. The
// second result is false when the file is a duplicate.
func openUniqueFile(path string, seen map[fileKey]struct{}) (source, bool, error) {
	resolved := path

	if abs, err := filepath.Abs(path); err == nil {
		if target, err := filepath.EvalSymlinks(abs); err == nil {
			resolved = target
		}
	}

	if info, err := os.Stat(resolved); err == nil {
		if key, ok := makeFileKey(info); ok {
			if _, dup := seen[key]; dup {
				return source{}, false, nil
			}

			seen[key] = struct{}{}
		}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return source{}, false, err
	}

	return source{name: path, reader: file, close: file.Close}, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
