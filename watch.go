package main

import (
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-translator/translator"
)

// watcher translates the flight plan each time its modification time moves.
type watcher struct {
	path      string
	translate func() ([]translator.Result, error)

	mu   sync.Mutex
	last time.Time
}

// check may be called by overlapping scheduler runs; a change is translated
// once.
func (w *watcher) check() {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, err := os.Stat(w.path)
	if err != nil {
		log.WithField("flightplan", w.path).Debugf("Flight plan not readable: %v", err)
		return
	}
	if st.ModTime().Equal(w.last) {
		return
	}
	w.last = st.ModTime()

	log.WithField("flightplan", w.path).Info("Flight plan changed")
	if _, err := w.translate(); err != nil {
		log.WithField("flightplan", w.path).Errorf("Translation failed: %v", err)
	}
}
