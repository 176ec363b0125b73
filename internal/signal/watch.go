package signal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/iburimskiy/portfolio-backdrop/internal/logging"
)

// FileWatcher feeds a Section from the contents of a file. Another
// process selects a section by writing its name into the file.
type FileWatcher struct {
	path    string
	section *Section
	log     logging.Logger
	watcher *fsnotify.Watcher
}

// WatchFile starts watching path. The file itself may not exist yet; its
// directory must. The current content, if any, is applied immediately.
func WatchFile(path string, section *Section, log logging.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve section file %q: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// editors often replace files, so watch the directory
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{path: abs, section: section, log: log, watcher: w}
	if err := fw.apply(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("section file: %v", err)
	}
	return fw, nil
}

// Run delivers file changes until ctx is done, then closes the watcher.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := fw.apply(); err != nil {
				fw.log.Warnf("section file: %v", err)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Errorf("section watcher: %v", err)
		}
	}
}

func (fw *FileWatcher) apply() error {
	data, err := os.ReadFile(fw.path)
	if err != nil {
		return fmt.Errorf("read %q: %w", fw.path, err)
	}
	// a truncate-then-write shows up as an empty read first
	if len(data) == 0 {
		return nil
	}
	fw.section.Set(string(data))
	fw.log.Debugf("section file set %q", fw.section.Load())
	return nil
}
