package core

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Option sets options for core operations
type Option func(*Settings)

// VersionDeletedHook is called whenever a repository version is squashed
// away, while the enclosing transaction is still open. Collaborators
// maintaining objects that reference versions (e.g. publications) cascade
// their deletions here. Hooks must be idempotent: a conflicting transaction
// may be retried.
type VersionDeletedHook func(domain, repo string, number uint64) error

// Settings defines various settings for core features
type Settings struct {
	l                   *zap.Logger
	lockTimeout         time.Duration
	strictRemove        bool
	dryRun              bool
	withMetrics         bool
	concurrentFetch     int
	retainOverride      int
	versionDeletedHooks []VersionDeletedHook
}

const defaultLockTimeout = 30 * time.Second

var defaultFetchConcurrency = 2 * runtime.NumCPU()

// WithLogger sets a logger for core operations (defaults to no logging)
func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.l = l
		}
	}
}

// WithLockTimeout bounds how long an operation waits for the repository
// lock before giving up with ErrConcurrentModification
func WithLockTimeout(d time.Duration) Option {
	return func(s *Settings) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithStrictRemove makes the removal of absent content an error instead of
// a no-op
func WithStrictRemove(strict bool) Option {
	return func(s *Settings) {
		s.strictRemove = strict
	}
}

// WithDryRun computes the effects of an operation without persisting them
// (supported by PurgeContent)
func WithDryRun(dryRun bool) Option {
	return func(s *Settings) {
		s.dryRun = dryRun
	}
}

// WithMetrics toggles the collection of usage metrics
func WithMetrics(enabled bool) Option {
	return func(s *Settings) {
		s.withMetrics = enabled
	}
}

// ConcurrentFetch sets the max level of concurrency to retrieve content
// unit descriptors. It defaults to 2 x #cpus.
func ConcurrentFetch(concurrency int) Option {
	return func(s *Settings) {
		if concurrency > 0 {
			s.concurrentFetch = concurrency
		}
	}
}

// WithRetainLatest overrides the repository's configured retention count
// for a single EnforceRetention call
func WithRetainLatest(retain int) Option {
	return func(s *Settings) {
		s.retainOverride = retain
	}
}

// WithVersionDeletedHook registers a cascade hook run when a version is
// deleted. May be repeated.
func WithVersionDeletedHook(h VersionDeletedHook) Option {
	return func(s *Settings) {
		if h != nil {
			s.versionDeletedHooks = append(s.versionDeletedHooks, h)
		}
	}
}

func defaultSettings(opts []Option) Settings {
	s := Settings{
		l:               zap.NewNop(),
		lockTimeout:     defaultLockTimeout,
		concurrentFetch: defaultFetchConcurrency,
	}
	for _, apply := range opts {
		apply(&s)
	}
	return s
}
