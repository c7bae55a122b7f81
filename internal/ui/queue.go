package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrQueueClosed is returned by Post after Close.
var ErrQueueClosed = errors.New("ui queue closed")

const defaultQueueSize = 64

// Queue carries closures from worker goroutines to the Bubble Tea update
// loop, which is its only consumer. Status setters posted here run on the
// control thread.
type Queue struct {
	tasks  chan func()
	done   chan struct{}
	closed sync.Once
}

type taskMsg func()

// NewQueue returns a queue buffering up to size pending tasks.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn, blocking while the buffer is full until ctx is done or
// the queue is closed.
func (q *Queue) Post(ctx context.Context, fn func()) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.tasks <- fn:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the queue. Pending tasks are discarded.
func (q *Queue) Close() {
	q.closed.Do(func() { close(q.done) })
}

// Wait returns a command delivering the next task to the update loop.
func (q *Queue) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-q.tasks:
			return taskMsg(fn)
		case <-q.done:
			return nil
		}
	}
}

// Drain runs every pending task on the calling goroutine and returns how
// many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}
