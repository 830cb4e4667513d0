package roast

import "context"

// Loop is the single goroutine all editor state is touched from.
//
// Work finished elsewhere (image decodes) is handed back with Post and runs
// in arrival order when the owner of the loop calls Run, RunOnce or Drain.
// Post is safe for concurrent use; the run methods must only be called from
// the goroutine that owns the editor.
type Loop struct {
	tasks chan func()
}

// defaultLoopBacklog bounds the number of posted tasks waiting to run.
const defaultLoopBacklog = 64

// NewLoop creates a loop that buffers up to backlog pending tasks.
// A non-positive backlog selects the default.
func NewLoop(backlog int) *Loop {
	if backlog <= 0 {
		backlog = defaultLoopBacklog
	}
	return &Loop{tasks: make(chan func(), backlog)}
}

// Post queues fn to run on the loop. It blocks while the backlog is full.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Run executes tasks until ctx is done and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.RunOnce(ctx); err != nil {
			return err
		}
	}
}

// RunOnce waits for a single task and executes it.
func (l *Loop) RunOnce(ctx context.Context) error {
	select {
	case fn := <-l.tasks:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain executes the tasks already queued without waiting for more and
// returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}
