package batch

import (
	"testing"
	"time"
)

type alwaysFail struct{}

func (alwaysFail) Run() bool { return false }

func TestCharacterJobEmptyPipelineSucceeds(t *testing.T) {
	job := &CharacterJob{}
	if !job.Run() {
		t.Errorf("empty CharacterJob should succeed trivially")
	}
}

func TestCharacterJobStopsAtFirstFailure(t *testing.T) {
	job := &CharacterJob{Sampling: []Sampler{alwaysFail{}}}
	if job.Run() {
		t.Errorf("CharacterJob with a failing sampler should fail")
	}
}

func TestPipelineRunsAllJobsConcurrently(t *testing.T) {
	p := NewPipeline(2, 16, time.Second)
	jobs := make([]*CharacterJob, 5)
	for i := range jobs {
		jobs[i] = &CharacterJob{}
	}
	results := p.RunAll(jobs)
	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, ok := range results {
		if !ok {
			t.Errorf("job %d = false, want true", i)
		}
	}
}

func TestProfilerObserveReportsOnlyAfterInterval(t *testing.T) {
	p := NewProfiler()
	durations := []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 6 * time.Millisecond}
	if !p.Observe(durations, 1) {
		t.Errorf("expected Observe() = true on the first call (lastLog is zero)")
	}
	if p.Observe(durations, 0) {
		t.Errorf("expected Observe() = false before logInterval has elapsed")
	}
}

func TestLatencyStatsEmptyInput(t *testing.T) {
	min, mean, p95, max := latencyStats(nil)
	if min != 0 || mean != 0 || p95 != 0 || max != 0 {
		t.Errorf("latencyStats(nil) = %v/%v/%v/%v, want all zero", min, mean, p95, max)
	}
}

func TestLatencyStatsMinMeanMax(t *testing.T) {
	durations := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	min, mean, _, max := latencyStats(durations)
	if min != 10*time.Millisecond {
		t.Errorf("min = %v, want 10ms", min)
	}
	if max != 30*time.Millisecond {
		t.Errorf("max = %v, want 30ms", max)
	}
	if mean != 20*time.Millisecond {
		t.Errorf("mean = %v, want 20ms", mean)
	}
}

func TestPipelinePreservesPerJobFailure(t *testing.T) {
	p := NewPipeline(2, 16, time.Second)
	jobs := []*CharacterJob{
		{},
		{Sampling: []Sampler{alwaysFail{}}},
		{},
	}
	results := p.RunAll(jobs)
	if results[0] != true || results[2] != true {
		t.Errorf("expected succeeding jobs to report true, got %v", results)
	}
	if results[1] != false {
		t.Errorf("expected failing job to report false, got %v", results[1])
	}
}
