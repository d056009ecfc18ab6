// Package worker is a small generic worker pool: submit closures, consume
// their outputs from a single results channel.
package worker

import "sync"

type Task[T any] func() T

type Result[T any] struct {
	TaskID string
	Output T
}

type Pool[T any] struct {
	tasks   chan taskWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
}

type taskWrapper[T any] struct {
	id string
	fn Task[T]
}

func NewPool[T any](workerCount, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		tasks:   make(chan taskWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}
	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.results <- Result[T]{
			TaskID: task.id,
			Output: task.fn(),
		}
	}
}

// Submit queues a task. Blocks when the buffer is full.
func (p *Pool[T]) Submit(id string, fn Task[T]) {
	p.tasks <- taskWrapper[T]{id: id, fn: fn}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting tasks. Workers drain the queue and exit, then the
// results channel is closed so consumers ranging over it terminate.
func (p *Pool[T]) Close() {
	close(p.tasks)
}
