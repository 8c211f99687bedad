package service

import (
	"sync"
	"time"

	"timeslots-service/internal/domain/entity"
)

// Autosave coalesces rapid segment edits into one persisted write per
// (user, date) key. Every Schedule call replaces the pending snapshot and
// restarts the delay; the flush callback fires once with the latest snapshot
// after the edits go quiet. Cancel drops a pending write so stale data is
// never flushed for a replaced or abandoned day.
type Autosave struct {
	delay time.Duration
	flush func(*entity.Entry)

	mu      sync.Mutex
	pending map[string]*pendingSave
}

type pendingSave struct {
	entry *entity.Entry
	timer *time.Timer
}

// NewAutosave creates an autosaver. flush is invoked outside the internal
// lock and must be safe to call from a timer goroutine.
func NewAutosave(delay time.Duration, flush func(*entity.Entry)) *Autosave {
	return &Autosave{
		delay:   delay,
		flush:   flush,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule stores entry as the pending snapshot for key and (re)starts the
// flush delay, cancelling any previously scheduled flush for the key.
func (a *Autosave) Schedule(key string, entry *entity.Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
		p.entry = entry
		p.timer = time.AfterFunc(a.delay, func() { a.fire(key) })
		return
	}

	a.pending[key] = &pendingSave{
		entry: entry,
		timer: time.AfterFunc(a.delay, func() { a.fire(key) }),
	}
}

// Pending returns a copy of the unflushed snapshot for key, or nil.
// Callers own the copy; editing it and re-Scheduling is how an edit builds
// on the pending state without racing the flush.
func (a *Autosave) Pending(key string) *entity.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[key]; ok {
		return p.entry.Clone()
	}
	return nil
}

// Cancel drops any pending write for key without flushing it.
func (a *Autosave) Cancel(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[key]; ok {
		p.timer.Stop()
		delete(a.pending, key)
	}
}

// FlushAll synchronously flushes every pending write. Used on shutdown.
func (a *Autosave) FlushAll() {
	a.mu.Lock()
	entries := make([]*entity.Entry, 0, len(a.pending))
	for key, p := range a.pending {
		p.timer.Stop()
		entries = append(entries, p.entry)
		delete(a.pending, key)
	}
	a.mu.Unlock()

	for _, entry := range entries {
		a.flush(entry)
	}
}

func (a *Autosave) fire(key string) {
	a.mu.Lock()
	p, ok := a.pending[key]
	if ok {
		delete(a.pending, key)
	}
	a.mu.Unlock()

	if ok {
		a.flush(p.entry)
	}
}
