package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pure/lang"
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

type (
	engineKey struct{}
	outputKey struct{}
	inputKey  struct{}
)

// WithEngine returns a new context.Context carrying the engine that commands
// render formulas with.
func WithEngine(ctx context.Context, e *lang.Engine) context.Context {
	return context.WithValue(ctx, engineKey{}, e)
}

// engineFrom returns the engine stored by [WithEngine], or a new engine with
// the default tokens.
func engineFrom(ctx context.Context) *lang.Engine {
	if e, ok := ctx.Value(engineKey{}).(*lang.Engine); ok && e != nil {
		return e
	}

	e, _ := lang.New()

	return e
}

// WithOutput returns a new context.Context whose command output is written
// to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithInput returns a new context.Context whose "-" source reads from r
// instead of standard input.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one formula input.
type source struct {
	name string
	io.Reader
}

// openSources opens the formula files named by paths.
//
// Files are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" collapse into a single stdin source placed
// last, so it reads after every regular file. Files that cannot be opened
// are returned as an error.
func openSources(paths []string, stdin io.Reader) ([]source, func(), error) {
	var (
		srcs     []source
		closers  []io.Closer
		hasStdin bool
	)

	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	seen := make(map[fileKey]struct{})

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		file, dup, err := openUniqueFile(path, seen)
		if err != nil {
			closeAll()

			return nil, func() {}, err
		}

		if dup {
			continue
		}

		closers = append(closers, file)
		srcs = append(srcs, source{name: path, Reader: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, Reader: stdin})
	}

	return srcs, closeAll, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// openUniqueFile opens the file at path unless a file with the same
// device/inode pair was already seen, in which case dup is true.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (file *os.File, dup bool, err error) {
	resolved, err := filepath.Abs(path)
	if err == nil {
		resolved, err = filepath.EvalSymlinks(resolved)
	}

	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, true, nil
		}

		seen[key] = struct{}{}
	}

	file, err = os.Open(resolved)

	return file, false, err
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
