package store

import (
	"sync"
	"time"
)

// DebouncedSaver coalesces bursts of edits into a single deferred Save.
// The editor notifies it after every mutation; the actual write happens
// once the user has been idle for the debounce window. Flush forces an
// immediate write, e.g. before quitting.
type DebouncedSaver struct {
	store    Store
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *DB
	running bool
	lastErr error
}

func NewDebouncedSaver(s Store, debounce time.Duration) *DebouncedSaver {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &DebouncedSaver{store: s, debounce: debounce}
}

// Notify records the latest state and (re)arms the save timer. The db is
// retained as-is; callers must pass a snapshot they will not mutate.
func (d *DebouncedSaver) Notify(db *DB) {
	if d == nil || db == nil {
		return
	}
	d.mu.Lock()
	d.pending = db
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.debounce)
	d.mu.Unlock()
}

func (d *DebouncedSaver) onTimer() {
	d.mu.Lock()
	if d.running {
		// A write is in-flight; re-arm to pick up the pending state after.
		if d.timer != nil {
			d.timer.Reset(d.debounce)
		}
		d.mu.Unlock()
		return
	}
	db := d.pending
	if db == nil {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.running = true
	d.mu.Unlock()

	err := d.store.Save(db)

	d.mu.Lock()
	d.running = false
	d.lastErr = err
	if d.pending != nil && d.timer != nil {
		d.timer.Reset(d.debounce)
	}
	d.mu.Unlock()
}

// Flush writes any pending state synchronously and stops the timer.
// Returns the most recent save error, including one from a background run.
func (d *DebouncedSaver) Flush() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	db := d.pending
	d.pending = nil
	err := d.lastErr
	d.mu.Unlock()

	if db != nil {
		if serr := d.store.Save(db); serr != nil {
			return serr
		}
		return nil
	}
	return err
}
