// Package sched implements the deferred-job queue used for lifecycle
// callbacks that must run after the current synchronous mutation completes.
//
// Jobs run in FIFO order. A job enqueued while the queue is flushing runs in
// the same flush, after the jobs already queued. There is no cancellation:
// once enqueued, a job always runs.
package sched

import "errors"

// Job is a deferred callback.
type Job func() error

// Queue is a single-threaded FIFO of jobs.
type Queue struct {
	jobs     []Job
	flushing bool
	depth    int
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends job.
func (q *Queue) Enqueue(job Job) {
	q.jobs = append(q.jobs, job)
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Flush runs pending jobs until the queue is empty and returns their joined
// errors. A failing job does not stop later ones. Calling Flush from inside
// a job is a no-op; the outer flush picks up anything enqueued.
func (q *Queue) Flush() error {
	if q.flushing {
		return nil
	}
	q.flushing = true
	defer func() { q.flushing = false }()

	var errs []error
	for len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs[0] = nil
		q.jobs = q.jobs[1:]
		if err := job(); err != nil {
			errs = append(errs, err)
		}
	}
	q.jobs = nil
	return errors.Join(errs...)
}

// Enter marks the start of a synchronous operation. Nested operations only
// increase the depth.
func (q *Queue) Enter() {
	q.depth++
}

// Exit marks the end of an operation started with Enter. When the outermost
// operation exits, the queue is flushed and the flush result returned.
func (q *Queue) Exit() error {
	if q.depth == 0 {
		return nil
	}
	q.depth--
	if q.depth > 0 {
		return nil
	}
	return q.Flush()
}

// Depth returns the current nesting depth.
func (q *Queue) Depth() int {
	return q.depth
}
