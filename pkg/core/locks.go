package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/contentdepot/depot/pkg/core/status"
)

// repoLocks serializes ledger mutations per (domain, repo). Operations on
// different repositories never block each other.
type repoLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

var versionLocks = &repoLocks{
	locks: make(map[string]chan struct{}),
}

func (r *repoLocks) sem(key string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	sem, ok := r.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		r.locks[key] = sem
	}
	return sem
}

// acquire blocks until the repo lock is held or the timeout elapses.
// The returned release function must be called exactly once.
func (r *repoLocks) acquire(domain, repo string, timeout time.Duration) (func(), error) {
	sem := r.sem(fmt.Sprint(domain, "/", repo))

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-timer.C:
		return nil, status.ErrConcurrentModification.WrapMessage(
			"timed out acquiring lock on repo %s/%s after %v", domain, repo, timeout)
	}
}
