package core

import (
	"sync"
	"time"

	"go.opencensus.io/stats"

	"github.com/contentdepot/depot/pkg/metrics"
)

// M describes usage metrics for the core package
type M struct {
	VersionsCreated  *stats.Int64Measure
	VersionsSquashed *stats.Int64Measure
	ContentPurged    *stats.Int64Measure
	CreateDuration   *stats.Float64Measure
	SquashDuration   *stats.Float64Measure
}

var (
	versionMetrics M
	metricsOnce    sync.Once
)

func ensureMetrics() {
	metricsOnce.Do(func() {
		versionMetrics = M{
			VersionsCreated:  metrics.Counter("depot/core/versions_created", "number of repository versions created"),
			VersionsSquashed: metrics.Counter("depot/core/versions_squashed", "number of repository versions squashed away"),
			ContentPurged:    metrics.Counter("depot/core/content_purged", "number of orphan content units purged"),
			CreateDuration:   metrics.Timing("depot/core/create_duration", "duration of version creation (ms)"),
			SquashDuration:   metrics.Timing("depot/core/squash_duration", "duration of version squash (ms)"),
		}
	})
}

func metricsInc(m *stats.Int64Measure) {
	if m != nil {
		metrics.Inc(m)
	}
}

func metricsSince(start time.Time, m *stats.Float64Measure) {
	if m != nil {
		metrics.Since(start, m)
	}
}
