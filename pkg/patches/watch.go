package patches

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is a debounced modification of one file in a watched patches
// directory.
type Change struct {
	File    string // Absolute path
	Removed bool
}

// Watcher reports changes to the patch files of a directory.
type Watcher struct {
	Dir      string
	Changes  <-chan Change
	Debounce time.Duration

	changes chan Change
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for dir. Call Start to begin receiving
// changes and Stop to release it.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan Change, 16)
	return &Watcher{
		Dir:      dir,
		Changes:  ch,
		Debounce: 100 * time.Millisecond,
		changes:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start creates the directory if needed and begins watching it. Stop
// must still be called when Start fails.
func (w *Watcher) Start() error {
	err := os.MkdirAll(w.Dir, 0755)
	if err == nil {
		err = w.watcher.Add(w.Dir)
	}
	if err != nil {
		close(w.done)
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. Changes that nobody
// received yet are dropped.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					if !w.emit(file) {
						return
					}
				}
				return
			}
			if !isPatchFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) >= w.Debounce {
					if !w.emit(file) {
						return
					}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// emit reports a change and returns false once the watcher is stopping.
func (w *Watcher) emit(file string) bool {
	_, err := os.Stat(file)
	select {
	case w.changes <- Change{File: file, Removed: os.IsNotExist(err)}:
		return true
	case <-w.stop:
		return false
	}
}

var seqRE = regexp.MustCompile(`^[0-9]{3}_.`)

// isPatchFile reports whether path names a sequenced patch file.
func isPatchFile(path string) bool {
	return seqRE.MatchString(filepath.Base(path))
}
