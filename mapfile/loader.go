// SPDX-License-Identifier: MIT

package mapfile

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/katalvlaran/regroup/relation"
)

// Loader resolves FileRef paths against a file system.
// A nil FS reads from the operating system with the path as given.
type Loader struct {
	FS fs.FS
}

// New returns a Loader reading from fsys.
func New(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

var _ relation.Loader = (*Loader)(nil)

// Load implements relation.Loader.
func (l *Loader) Load(ref relation.FileRef) (relation.Table, error) {
	read := readerFor(ref.Path)
	if read == nil {
		return relation.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ref.Path)
	}
	data, err := l.readFile(ref.Path)
	if err != nil {
		return relation.Table{}, fmt.Errorf("read mapping %s: %w", ref.Path, err)
	}
	t, err := read(data)
	if err != nil {
		return relation.Table{}, fmt.Errorf("parse mapping %s: %w", ref.Path, err)
	}
	return t, nil
}

func (l *Loader) readFile(name string) ([]byte, error) {
	if l == nil || l.FS == nil {
		return os.ReadFile(name)
	}
	return fs.ReadFile(l.FS, name)
}

func readerFor(name string) func([]byte) (relation.Table, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return ReadDelimited
	case ".yaml", ".yml":
		return ReadYAML
	default:
		return nil
	}
}
