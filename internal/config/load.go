package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/fsutil"
)

// UnsupportedFileError is returned when a file is named explicitly but no
// loader handles its extension.
type UnsupportedFileError struct {
	Path string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported task file %q", e.Path)
}

// Load resolves path to a list of task files and loads each one with the
// loader registered for its extension. A directory is searched recursively
// in lexical order. The models of all files are merged in that order.
func Load(ctx context.Context, path string, loaders ...Loader) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving task files.", "path", path)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}

	files, err := resolve(path, exts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No task files found at the specified path.", "path", path)
	}

	model := &Model{}
	for _, file := range files {
		l, ok := byExt[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, &UnsupportedFileError{Path: file}
		}
		m, err := l.Load(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load task file '%s': %w", file, err)
		}
		logger.Debug("Loaded task file.", "path", file, "tasks", len(m.Tasks))
		model.Merge(m)
	}

	logger.Debug("Finished loading task files.", "files", len(files), "tasks", len(model.Tasks))
	return model, nil
}

// resolve returns the task files at path. A single file is returned as-is so
// an unsupported extension is reported instead of silently ignored.
func resolve(path string, exts []string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("task path not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := fsutil.FindFilesByExtension(path, exts...)
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}
	return files, nil
}
