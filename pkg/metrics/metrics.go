// Package metrics collects usage metrics with opencensus.
//
// Measures are registered lazily by the instrumented packages, views are
// exported on a periodic basis. The default exporter logs aggregated rows
// with zap; callers may plug any opencensus view.Exporter instead.
package metrics

import (
	"context"
	"sync"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/zap"
)

var (
	mp       *settings
	initOnce sync.Once
)

type settings struct {
	exporter view.Exporter
	period   time.Duration
}

// Option customizes the metrics collection
type Option func(*settings)

// WithExporter sets the view exporter receiving aggregated metrics
func WithExporter(e view.Exporter) Option {
	return func(s *settings) {
		s.exporter = e
	}
}

// WithReportingPeriod sets how often views are exported
func WithReportingPeriod(d time.Duration) Option {
	return func(s *settings) {
		s.period = d
	}
}

// WithZapExporter exports aggregated metrics as structured log entries
func WithZapExporter(l *zap.Logger) Option {
	return func(s *settings) {
		s.exporter = &zapExporter{l: l}
	}
}

// Init global settings for metrics collection.
//
// Init may be called multiple times: only the first time matters.
func Init(opts ...Option) {
	initOnce.Do(func() {
		mp = &settings{period: 10 * time.Second}
		for _, apply := range opts {
			apply(mp)
		}
		if mp.exporter == nil {
			mp.exporter = &zapExporter{l: zap.NewNop()}
		}
		view.RegisterExporter(mp.exporter)
		view.SetReportingPeriod(mp.period)
	})
}

// Counter declares an int64 count measure and registers its view
func Counter(name, description string) *stats.Int64Measure {
	m := stats.Int64(name, description, stats.UnitDimensionless)
	mustRegister(&view.View{
		Name:        name,
		Description: description,
		Measure:     m,
		Aggregation: view.Sum(),
	})
	return m
}

// Timing declares a float64 duration measure (milliseconds) and registers
// its distribution view
func Timing(name, description string) *stats.Float64Measure {
	m := stats.Float64(name, description, stats.UnitMilliseconds)
	mustRegister(&view.View{
		Name:        name,
		Description: description,
		Measure:     m,
		Aggregation: view.Distribution(1, 5, 25, 100, 500, 2500, 10000),
	})
	return m
}

func mustRegister(v *view.View) {
	if err := view.Register(v); err != nil {
		panic(err)
	}
}

// Inc increments a counter-like metric
func Inc(counter *stats.Int64Measure, tags ...map[string]string) {
	_ = stats.RecordWithTags(context.Background(), mergeTags(tags), counter.M(1))
}

// Since feeds a millisecs timing measurement from some start time
func Since(start time.Time, measure *stats.Float64Measure, tags ...map[string]string) {
	ms := float64(time.Since(start).Nanoseconds()) / 1e6
	_ = stats.RecordWithTags(context.Background(), mergeTags(tags), measure.M(ms))
}

func mergeTags(extras []map[string]string) []tag.Mutator {
	mutators := make([]tag.Mutator, 0, 10)
	for _, extra := range extras {
		for k, v := range extra {
			mutators = append(mutators, tag.Upsert(tag.MustNewKey(k), v))
		}
	}
	return mutators
}

type zapExporter struct {
	l *zap.Logger
}

func (z *zapExporter) ExportView(d *view.Data) {
	for _, row := range d.Rows {
		z.l.Info("metrics",
			zap.String("view", d.View.Name),
			zap.String("aggregation", d.View.Aggregation.Type.String()),
			zap.Any("value", row.Data),
		)
	}
}
