package ingest

import (
	"sync"
	"time"
)

// LastRun is the outcome of the most recent full load.
type LastRun struct {
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
	Reports    []Report  `json:"reports"`
}

// History keeps the last run for readers running concurrently with reloads.
type History struct {
	mu   sync.RWMutex
	last *LastRun
}

func (h *History) Record(reports []Report, err error) {
	run := &LastRun{FinishedAt: time.Now().UTC(), Reports: append([]Report(nil), reports...)}
	if err != nil {
		run.Error = err.Error()
	}
	h.mu.Lock()
	h.last = run
	h.mu.Unlock()
}

// Last returns a copy of the last run, or nil before the first one.
func (h *History) Last() *LastRun {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return nil
	}
	cp := *h.last
	cp.Reports = append([]Report(nil), h.last.Reports...)
	return &cp
}
