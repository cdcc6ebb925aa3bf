package batch

import (
	"log"
	"sort"
	"time"
)

// Profiler tracks per-job latency distribution and failure counts across
// successive RunAll batches, rate-limiting its own logging so a
// steady stream of high-throughput batches doesn't flood the log. Unlike
// a frame-rate profiler, there is no single "tick" to sample — latency is
// the thing callers actually care about when fanning many independent
// character pipelines across a worker pool, so this accumulates a
// distribution across jobs rather than a heap/GC snapshot.
type Profiler struct {
	logInterval time.Duration
	lastLog     time.Time
	batches     int
	jobs        int
	failures    int
}

// NewProfiler creates a Profiler that logs a summary at most once per
// second.
func NewProfiler() *Profiler {
	return &Profiler{logInterval: time.Second}
}

// Observe records one RunAll batch's per-job durations and failure count.
// It logs a summary (batch, job and failure counts since the last log, and
// the min/mean/p95/max latency of this call's durations only) once
// logInterval has elapsed, and reports whether it did.
func (p *Profiler) Observe(durations []time.Duration, failures int) bool {
	p.batches++
	p.jobs += len(durations)
	p.failures += failures

	now := time.Now()
	if !p.lastLog.IsZero() && now.Sub(p.lastLog) < p.logInterval {
		return false
	}

	min, mean, p95, max := latencyStats(durations)
	log.Printf("[batch] batches=%d jobs=%d failures=%d latency(min/mean/p95/max)=%v/%v/%v/%v",
		p.batches, p.jobs, p.failures, min, mean, p95, max)

	p.batches, p.jobs, p.failures = 0, 0, 0
	p.lastLog = now
	return true
}

// latencyStats returns the min, mean, 95th-percentile, and max of
// durations. All four are zero for an empty slice.
func latencyStats(durations []time.Duration) (min, mean, p95, max time.Duration) {
	if len(durations) == 0 {
		return
	}
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	min, max = sorted[0], sorted[len(sorted)-1]
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	mean = total / time.Duration(len(sorted))

	idx := (len(sorted) * 95) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	p95 = sorted[idx]
	return
}
