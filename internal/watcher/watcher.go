package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // catalog file written or created
	ChangeRemoved                    // catalog file deleted or renamed away
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a debounced change to one catalog file.
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher monitors a directory tree for catalog file changes using fsnotify.
type Watcher struct {
	Root    string
	Changes <-chan Change

	changes  chan Change
	stop     chan struct{}
	done     chan struct{}
	started  bool
	watcher  *fsnotify.Watcher
	match    func(path string) bool
	debounce time.Duration
}

// NewWatcher creates a watcher for root. match selects the files of interest.
func NewWatcher(root string, match func(path string) bool, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Root:     root,
		Changes:  ch,
		changes:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
		match:    match,
		debounce: debounce,
	}, nil
}

// Start adds root and all its subdirectories and begins watching. On error
// the underlying fsnotify watcher is closed.
func (w *Watcher) Start() error {
	if err := w.addTree(w.Root); err != nil {
		w.watcher.Close()
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. Changes still pending
// are dropped once nobody receives them.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new directory")
					}
					continue
				}
			}

			if !w.match(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Watch error")
		}
	}
}

// emit reports the current state of file: present files are modified, missing ones removed.
func (w *Watcher) emit(file string) {
	kind := ChangeModified
	if _, err := os.Stat(file); err != nil {
		kind = ChangeRemoved
	}
	select {
	case w.changes <- Change{Kind: kind, File: file}:
	case <-w.stop:
	}
}
