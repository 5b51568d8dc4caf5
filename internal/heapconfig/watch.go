package heapconfig

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a HeapConfig file whenever it changes on disk, wrapping
// fsnotify's event and error channels.
//
// Watcher never touches a heap.Heap directly: Watch only invokes the
// caller-supplied callback on the watcher's own goroutine. The caller is
// responsible for not calling back into a Heap concurrently with another
// in-flight Heap operation — the Heap itself enforces no such exclusion,
// per its single-threaded, non-reentrant contract.
type Watcher struct {
	path string
	w    *fsnotify.Watcher
	errC chan error
	done chan struct{}
}

// NewWatcher creates a Watcher on the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("heapconfig: create watcher: %w", err)
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("heapconfig: watch %s: %w", path, err)
	}

	return &Watcher{
		path: path,
		w:    w,
		errC: make(chan error, 1),
		done: make(chan struct{}),
	}, nil
}

// Watch starts forwarding config reloads to onChange whenever the watched
// file receives a write event. It returns immediately; delivery happens
// on a background goroutine until Close is called.
func (fw *Watcher) Watch(onChange func(HeapConfig)) {
	go func() {
		for {
			select {
			case ev, ok := <-fw.w.Events:
				if !ok {
					return
				}

				if ev.Op&fsnotify.Write == 0 {
					continue
				}

				cfg, err := Load(fw.path)
				if err != nil {
					select {
					case fw.errC <- err:
					default:
					}

					continue
				}

				onChange(cfg)
			case err, ok := <-fw.w.Errors:
				if !ok {
					return
				}

				select {
				case fw.errC <- err:
				default:
				}
			case <-fw.done:
				return
			}
		}
	}()
}

// Errors returns the channel on which load and fsnotify errors are
// reported.
func (fw *Watcher) Errors() <-chan error { return fw.errC }

// Close stops the watcher and releases its underlying fsnotify handle.
func (fw *Watcher) Close() error {
	close(fw.done)
	return fw.w.Close()
}
