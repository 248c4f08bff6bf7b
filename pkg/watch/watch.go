// Package watch monitors an asset root for changes and coalesces rapid
// event bursts into batched notifications. Editors and DCC exporters
// typically trigger several writes per save, so events are debounced
// before the callback fires.
//
// Sidecar writes made by a batch application re-trigger a notification;
// because rule application is idempotent the follow-up pass commits
// nothing and the loop settles.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
)

// Watcher monitors a directory tree for asset changes.
type Watcher struct {
	root     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	logger   zerolog.Logger
}

// New creates a watcher for the tree rooted at root. Events quieter
// than debounce apart are merged into one notification.
func New(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		return nil, errors.New(errors.ErrInvalidInput, "debounce must be positive")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		fw:       fw,
		logger:   logging.GetLogger("watch"),
	}, nil
}

// Close releases the underlying watcher. Run returns after Close.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run watches until ctx is cancelled or the watcher is closed. Each
// settled burst of changes invokes onBatch with the sorted set of
// changed paths.
func (w *Watcher) Run(ctx context.Context, onBatch func(paths []string)) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info().Str("root", w.root).Dur("debounce", w.debounce).Msg("watching for changes")

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			// New directories join the watch set.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !ignoredDir(filepath.Base(event.Name)) {
						_ = w.addTree(event.Name)
					}
					continue
				}
			}
			if ignoredFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			w.logger.Debug().Int("changed", len(paths)).Msg("change burst settled")
			onBatch(paths)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ignoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrAssetScan, "failed to watch %s", dir)
	}
	return nil
}

func ignoredDir(name string) bool {
	return strings.HasPrefix(name, ".")
}

func ignoredFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != ".assetrules.toml" {
		return true
	}
	switch filepath.Ext(base) {
	case ".swp", ".tmp", ".lock":
		return true
	}
	return false
}
