package usecase

import "sync"

// commitGuard blocks a second concurrent commit on the same draft: the step
// form stays interactive during a commit, but the transition is rejected
// until the in-flight one resolves.
type commitGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func newCommitGuard() *commitGuard {
	return &commitGuard{inflight: make(map[string]struct{})}
}

// tryAcquire claims the entity for one commit. Returns false when another
// commit on the same entity is still running.
func (g *commitGuard) tryAcquire(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[id]; busy {
		return false
	}
	g.inflight[id] = struct{}{}
	return true
}

func (g *commitGuard) release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, id)
}
