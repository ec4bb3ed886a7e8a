package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"mackerel-hq/mmpp/pkg/config"
	"mackerel-hq/mmpp/pkg/expr"
	"mackerel-hq/mmpp/pkg/expr/ast"
)

// Config controls which files are expression files and how they are read.
type Config struct {
	// Extensions lists the expression file extensions, e.g. ".graph"
	Extensions []string

	// IncludeHidden also visits files and directories whose name starts with '.'
	IncludeHidden bool

	// FollowSymlinks controls whether symbolic links are followed
	FollowSymlinks bool

	// MaxFileSize is the largest file accepted, in bytes
	MaxFileSize int64
}

// ConfigFrom derives a loader configuration from the application configuration.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Extensions:     append([]string(nil), cfg.Format.Extensions...),
		IncludeHidden:  cfg.Format.IncludeHidden,
		FollowSymlinks: true,
		MaxFileSize:    int64(cfg.Parser.MaxInputBytes),
	}
}

// DefaultConfig returns the loader configuration for config.DefaultConfig().
func DefaultConfig() *Config {
	return ConfigFrom(config.DefaultConfig())
}

// Loader finds, reads, formats and rewrites expression files.
// Each file holds exactly one expression.
type Loader struct {
	config    *Config
	formatter *expr.Formatter
}

// NewLoader creates a loader. A nil config means DefaultConfig and a nil
// formatter means one with default limits.
func NewLoader(cfg *Config, formatter *expr.Formatter) *Loader {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if formatter == nil {
		formatter = expr.NewFormatter(expr.Options{})
	}
	return &Loader{
		config:    cfg,
		formatter: formatter,
	}
}

// Config returns the loader configuration.
func (l *Loader) Config() *Config {
	return l.config
}

// Collect expands paths into the sorted list of expression files they name.
// Files given explicitly are kept whatever their extension; directories are
// walked recursively for files with a configured extension.
func (l *Loader) Collect(paths ...string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &LoadError{FilePath: path, Message: "failed to access path", Cause: err}
		}

		if !info.IsDir() {
			if !seen[path] {
				seen[path] = true
				result = append(result, path)
			}
			continue
		}

		found, err := l.collectDirectory(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
	}

	sort.Strings(result)
	return result, nil
}

func (l *Loader) collectDirectory(dir string) ([]string, error) {
	var found []string
	visited := make(map[string]bool)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != dir && !l.config.IncludeHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !l.config.FollowSymlinks {
				return nil
			}

			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return &LoadError{FilePath: path, Message: "failed to resolve symlink", Cause: err}
			}
			if visited[realPath] {
				return nil
			}
			visited[realPath] = true
		}

		if l.HasValidExtension(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*LoadError); ok {
			return nil, err
		}
		return nil, &LoadError{FilePath: dir, Message: "failed to walk directory", Cause: err}
	}

	return found, nil
}

// HasValidExtension checks if the file has a configured extension.
// The comparison ignores case.
func (l *Loader) HasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range l.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// IsHidden reports whether the last element of path starts with a dot.
func IsHidden(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Read returns the contents of an expression file after checking that it is
// a regular file within the size limit and valid UTF-8.
func (l *Loader) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return "", &LoadError{FilePath: path, Message: "file not found", Cause: err}
		case os.IsPermission(err):
			return "", &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		default:
			return "", &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
		}
	}

	if !info.Mode().IsRegular() {
		return "", &LoadError{FilePath: path, Message: "not a regular file"}
	}

	if l.config.MaxFileSize > 0 && info.Size() > l.config.MaxFileSize {
		return "", &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	if !utf8.Valid(data) {
		return "", &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}

	return string(data), nil
}

// Result is the outcome of formatting one file.
type Result struct {
	// Path is the file that was formatted
	Path string

	// Original is the file content as read
	Original string

	// Formatted is the canonical rendering, without trailing newline
	Formatted string
}

// Content returns what the file should contain: the canonical rendering
// followed by a single newline.
func (r *Result) Content() string {
	return r.Formatted + "\n"
}

// Changed reports whether the file differs from its canonical content.
func (r *Result) Changed() bool {
	return r.Original != r.Content()
}

// Format reads and formats one file. Parse errors carry the path as their
// source name.
func (l *Loader) Format(path string) (*Result, error) {
	src, err := l.Read(path)
	if err != nil {
		return nil, err
	}

	formatted, err := l.formatter.Format(path, src)
	if err != nil {
		return nil, err
	}

	return &Result{Path: path, Original: src, Formatted: formatted}, nil
}

// Lint reads, parses and validates one file.
func (l *Loader) Lint(path string) (ast.Metric, error) {
	src, err := l.Read(path)
	if err != nil {
		return nil, err
	}
	return l.formatter.ParseAndValidate(path, src)
}

// Write replaces the file with its canonical content when it changed. It
// reports whether the file was written. The replacement goes through a
// temporary file in the same directory and keeps the original permissions.
func (l *Loader) Write(r *Result) (bool, error) {
	if !r.Changed() {
		return false, nil
	}

	info, err := os.Stat(r.Path)
	if err != nil {
		return false, &LoadError{FilePath: r.Path, Message: "failed to access file", Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.Path), "."+filepath.Base(r.Path)+".*.tmp")
	if err != nil {
		return false, &LoadError{FilePath: r.Path, Message: "failed to create temporary file", Cause: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(r.Content()); err != nil {
		tmp.Close()
		return false, &LoadError{FilePath: r.Path, Message: "failed to write file", Cause: err}
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return false, &LoadError{FilePath: r.Path, Message: "failed to set permissions", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return false, &LoadError{FilePath: r.Path, Message: "failed to write file", Cause: err}
	}
	if err := os.Rename(tmpName, r.Path); err != nil {
		return false, &LoadError{FilePath: r.Path, Message: "failed to replace file", Cause: err}
	}

	return true, nil
}
