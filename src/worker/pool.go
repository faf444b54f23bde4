// Package worker runs slow effects (uploads) off the event loop goroutine.
package worker

import (
	"context"
	"runtime"
	"sync"

	"regionshot/src/logutil"
	"regionshot/src/messages"
)

// Job is a unit of work. It reports its outcome as a result message.
type Job func(ctx context.Context) messages.Message

// ResultCallback is invoked on job completion (from a worker goroutine).
// The event loop should pass a closure that posts back into the event loop safely.
type ResultCallback func(msg messages.Message)

// Pool is a fixed-size worker pool with a 1-slot input queue (strict back-pressure).
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

type job struct {
	ctx context.Context
	run Job
	cb  ResultCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0. Queue is 1 slot.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				msg := runWithContext(j.ctx, j.run)
				logutil.Debugf("Worker: job finished with %s", msg.Type())
				j.cb(msg)
			}
		}()
	}
}

// Submit enqueues a job if the single-slot queue is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, run Job, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, run: run, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	p.Stop()
	p.wg.Wait()
}

// Stop stops accepting jobs and returns without waiting. A running job finishes
// (or is abandoned through its context) in the background.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.jobs) })
}

// runWithContext returns early with messages.Error when ctx ends before the job.
// The job itself keeps running in the background.
func runWithContext(ctx context.Context, run Job) messages.Message {
	if _, ok := ctx.Deadline(); !ok && ctx.Done() == nil {
		return run(ctx)
	}
	resCh := make(chan messages.Message, 1)
	go func() {
		resCh <- run(ctx)
	}()
	select {
	case msg := <-resCh:
		return msg
	case <-ctx.Done():
		return messages.Error{Text: ctx.Err().Error()}
	}
}
