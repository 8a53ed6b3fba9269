// Package manifest reads and writes the plain-text list of generated HTML
// documents consumed by the save command.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
)

// FileName is the manifest written at the root of a translated folder.
const FileName = "created_html_files.txt"

// PathIn returns the manifest path for output directory dir.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Write stores paths, one per line in the given order, in dir/FileName and
// returns the manifest path. An existing manifest is replaced.
func Write(dir string, paths []string) (string, error) {
	target := PathIn(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create manifest directory").
			WithContext("path", dir).
			Build()
	}

	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(target, []byte(b.String()), 0o644); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write manifest").
			WithContext("path", target).
			Build()
	}
	return target, nil
}

// Read returns the non-blank lines of the manifest at path, trimmed.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.WrapError(err, ferrors.CategoryNotFound, "manifest not found").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "open manifest").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return paths, nil
}
