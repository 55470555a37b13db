package keymap

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/vfs"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("keymap watcher closed")

// Watcher reloads a keymap file whenever it changes on disk.
//
// The directory holding the file is watched rather than the file itself so
// that editors replacing the file atomically still trigger a reload.
// onChange runs on the watcher goroutine.
type Watcher struct {
	parser   *Parser
	fsys     vfs.VFS
	path     string
	onChange func(Keymap)

	watcher *fsnotify.Watcher

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Watch starts watching path and calls onChange with every reparsed keymap.
func (p *Parser) Watch(fsys vfs.VFS, path string, onChange func(Keymap)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		parser:   p,
		fsys:     fsys,
		path:     absPath,
		onChange: onChange,
		watcher:  fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.parser.logger.Debug("keymap changed", zap.String("path", w.path), zap.String("op", ev.Op.String()))
			km := w.parser.Load(w.fsys, w.path)
			if w.onChange != nil {
				w.onChange(km)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.parser.logger.Warn("keymap watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
