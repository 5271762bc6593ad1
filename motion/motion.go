// Package motion exposes the user's reduced-motion accessibility
// preference to the renderer. Desktop Go has no media-query
// equivalent, so the preference is modeled as an injected Source; the
// shipped implementation watches a marker file whose presence means
// "reduce motion".
package motion

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Source reports the reduced-motion preference and notifies on change.
type Source interface {
	// Reduced returns the current preference.
	Reduced() bool

	// Changes delivers the new value whenever the preference flips.
	// A nil channel is valid and means the source never changes.
	Changes() <-chan bool
}

// Static is a Source with a fixed value, for tests and for hosts
// without a usable preference signal.
type Static bool

func (s Static) Reduced() bool        { return bool(s) }
func (s Static) Changes() <-chan bool { return nil }

// DefaultMarkerPath returns the conventional marker file location
// under the user config directory.
func DefaultMarkerPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dotfield", "reduce-motion"), nil
}

// FileSource watches a marker file: the preference is "reduced" while
// the file exists. Change events arrive on Changes, deduplicated.
type FileSource struct {
	path    string
	watcher *fsnotify.Watcher
	log     *zap.Logger
	reduced atomic.Bool
	changes chan bool
}

// NewFileSource starts watching the directory containing path. The
// directory is created if missing so the watch can be established
// before the marker ever exists.
func NewFileSource(path string, log *zap.Logger) (*FileSource, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	s := &FileSource{
		path:    path,
		watcher: watcher,
		log:     log,
		changes: make(chan bool, 1),
	}
	s.reduced.Store(fileExists(path))
	log.Info("watching reduced motion marker",
		zap.String("path", path), zap.Bool("reduced", s.reduced.Load()))

	go s.watch()
	return s, nil
}

// Reduced returns the last observed preference.
func (s *FileSource) Reduced() bool { return s.reduced.Load() }

// Changes delivers preference flips. Only the latest value is
// retained if the consumer lags.
func (s *FileSource) Changes() <-chan bool { return s.changes }

// Close stops the watcher. The Changes channel stops delivering after
// Close; it is not closed, matching the Source contract for consumers
// that select on it.
func (s *FileSource) Close() error { return s.watcher.Close() }

func (s *FileSource) watch() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != s.path {
				continue
			}
			reduced := fileExists(s.path)
			if s.reduced.Swap(reduced) == reduced {
				continue
			}
			s.log.Info("reduced motion preference changed", zap.Bool("reduced", reduced))
			s.publish(reduced)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("reduced motion watch error", zap.Error(err))
		}
	}
}

// publish replaces any undelivered value so the consumer always sees
// the latest state.
func (s *FileSource) publish(reduced bool) {
	for {
		select {
		case s.changes <- reduced:
			return
		default:
			select {
			case <-s.changes:
			default:
			}
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
