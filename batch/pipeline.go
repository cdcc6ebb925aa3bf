// Package batch distributes independent per-character animation
// pipelines across a worker pool (§5: callers may run independent
// pipelines concurrently provided each SamplingContext is exclusive to
// one thread, inputs are shared read-only, and outputs are disjoint).
// The fan-out pattern — a dynamic worker pool fed by SubmitTask, with a
// WaitGroup providing the per-frame completion barrier — is grounded on
// the teacher's per-frame animator prep phase. Pipeline also carries a
// Profiler that tracks per-job latency and failure counts across batches.
package batch

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/lumenforge/skelcore/blending"
	"github.com/lumenforge/skelcore/ltm"
	"github.com/lumenforge/skelcore/skinning"
)

// Sampler is satisfied by animation.SamplingJob and rawanim.RawSamplingJob
// alike, so a CharacterJob can drive either the compressed or the
// uncompressed sampler for a given layer.
type Sampler interface {
	Run() bool
}

// CharacterJob is one character's full per-frame pipeline: sample every
// layer, blend, compute model-space matrices, then skin every mesh part.
// Each stage's buffers (including any SamplingContext) must be exclusive
// to this CharacterJob — Pipeline never shares them across goroutines.
type CharacterJob struct {
	Sampling     []Sampler
	Blending     *blending.BlendingJob
	LocalToModel *ltm.LocalToModelJob
	Skinning     []*skinning.SkinningJob
}

// Run executes every stage in order, stopping at the first failure. It
// never panics and never partially applies a stage's output beyond what
// that stage's own Run already guarantees.
func (c *CharacterJob) Run() bool {
	for _, s := range c.Sampling {
		if !s.Run() {
			return false
		}
	}
	if c.Blending != nil {
		if !c.Blending.Run() {
			return false
		}
	}
	if c.LocalToModel != nil {
		if !c.LocalToModel.Run() {
			return false
		}
	}
	for _, s := range c.Skinning {
		if !s.Run() {
			return false
		}
	}
	return true
}

// Pipeline fans a batch of independent CharacterJobs out across a pool of
// reused workers, avoiding per-frame goroutine-spawn overhead.
type Pipeline struct {
	pool     worker.DynamicWorkerPool
	profiler *Profiler
}

// NewPipeline builds a Pipeline backed by a dynamic worker pool sized for
// workers concurrent goroutines, a task queue of queueSize, and idleTimeout
// before an unused worker exits.
func NewPipeline(workers, queueSize int, idleTimeout time.Duration) *Pipeline {
	return &Pipeline{
		pool:     worker.NewDynamicWorkerPool(workers, queueSize, idleTimeout),
		profiler: NewProfiler(),
	}
}

// RunAll submits every job to the pool and blocks until all have run,
// returning each job's success flag in the same order as jobs.
func (p *Pipeline) RunAll(jobs []*CharacterJob) []bool {
	results := make([]bool, len(jobs))
	durations := make([]time.Duration, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		idx := i
		job := j
		p.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				start := time.Now()
				results[idx] = job.Run()
				durations[idx] = time.Since(start)
				return nil, nil
			},
		})
	}
	wg.Wait()

	failures := 0
	for _, ok := range results {
		if !ok {
			failures++
		}
	}
	p.profiler.Observe(durations, failures)
	return results
}
