package content

import (
	"fmt"
	"os"
	"time"
)

// FileVersion is a change token for a file: two different tokens mean the
// file changed.
type FileVersion struct {
	ModTime time.Time
	Size    int64
}

// Equal reports whether two tokens describe the same file state.
func (v FileVersion) Equal(o FileVersion) bool {
	return v.Size == o.Size && v.ModTime.Equal(o.ModTime)
}

// StatVersion reads the current version token of path.
func StatVersion(path string) (FileVersion, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileVersion{}, fmt.Errorf("stat content: %w", err)
	}
	return FileVersion{ModTime: fi.ModTime(), Size: fi.Size()}, nil
}

// Watcher detects edits to the content file by polling its version token.
// Poll is meant to be called from the update loop on a timer, so no
// goroutine or lock is involved.
type Watcher struct {
	path    string
	version FileVersion
	checks  int
	changes int
}

// NewWatcher records the current version of path.
func NewWatcher(path string) (*Watcher, error) {
	v, err := StatVersion(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, version: v}, nil
}

// Poll reports whether the file changed since the previous Poll (or since
// NewWatcher). A stat error leaves the recorded version untouched.
func (w *Watcher) Poll() (bool, error) {
	w.checks++
	v, err := StatVersion(w.path)
	if err != nil {
		return false, err
	}
	if v.Equal(w.version) {
		return false, nil
	}
	w.version = v
	w.changes++
	return true, nil
}

// Path returns the watched path.
func (w *Watcher) Path() string { return w.path }

// Stats returns how many polls ran and how many saw a change.
func (w *Watcher) Stats() (checks, changes int) { return w.checks, w.changes }
