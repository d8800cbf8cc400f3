package handlers

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/heraldhq/herald/internal/campaign"
)

var errRunNotFound = errors.New("campaign run not found")

// maxPlannedRuns bounds how many planned runs can sit waiting for a send
// request. Planning the next run past the limit evicts the oldest one.
const maxPlannedRuns = 64

// runRegistry holds planned runs between the plan and send requests.
// A run stays registered until it reaches a terminal state, so a
// rejected verification can be retried. Abandoned runs are evicted
// oldest-first once the registry is full.
type runRegistry struct {
	mu    sync.Mutex
	runs  map[string]*campaign.Run
	order []string
	limit int
}

func newRunRegistry(limit int) *runRegistry {
	return &runRegistry{runs: make(map[string]*campaign.Run), limit: limit}
}

func (r *runRegistry) add(run *campaign.Run) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.runs) >= r.limit && len(r.order) > 0 {
		oldest := r.order[0]
		r.order = r.order[1:]
		// Entries removed after completion leave stale ids in order.
		delete(r.runs, oldest)
	}
	r.runs[id] = run
	r.order = append(r.order, id)
	return id
}

func (r *runRegistry) get(id string) (*campaign.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, errRunNotFound
	}
	return run, nil
}

func (r *runRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.runs, id)
	r.mu.Unlock()
}
