// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry tracks pipeline runs by identifier. Status polling reads
// concurrently; only the run that owns an entry mutates it, so a single
// RWMutex over the map suffices.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/litreview/pkg/types"
)

// Run statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one pipeline run's lifecycle record.
type Run struct {
	ID           string     `json:"runId"`
	Topic        string     `json:"topic"`
	PaperLimit   int        `json:"paperLimit"`
	Status       string     `json:"status"`
	ReportPath   string     `json:"reportPath,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ErrNotFound is returned when a run identifier is unknown.
var ErrNotFound = eris.New("run not found")

// Registry is an in-memory run table safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{runs: make(map[string]*Run)}
}

// Create registers a new pending run and returns its identifier.
func (r *Registry) Create(topic string, paperLimit int) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		Topic:      topic,
		PaperLimit: paperLimit,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	r.mu.Lock()
	r.runs[run.ID] = run
	r.mu.Unlock()
	return snapshot(run)
}

// Start marks a run as running.
func (r *Registry) Start(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run, ok := r.runs[id]; ok {
		run.Status = StatusRunning
	}
}

// Finish records a run's terminal state. A run with a report artifact is
// completed; anything else failed, with the pipeline's error message
// preserved verbatim.
func (r *Registry) Finish(id string, st *types.ResearchState) *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	run.CompletedAt = &now
	if st.ReportPath != "" {
		run.Status = StatusCompleted
		run.ReportPath = st.ReportPath
	} else {
		run.Status = StatusFailed
		run.ErrorMessage = st.LastError
	}
	return snapshot(run)
}

// Get returns a copy of the run record.
func (r *Registry) Get(id string) (*Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(run), nil
}

// List returns copies of all runs, newest first.
func (r *Registry) List() []*Run {
	r.mu.RLock()
	out := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, snapshot(run))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func snapshot(run *Run) *Run {
	cp := *run
	if run.CompletedAt != nil {
		t := *run.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
