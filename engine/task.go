package engine

import (
	"time"

	"github.com/lixenwraith/spatial-shell/parameter"
)

// Status is the result of advancing a task by one frame
type Status uint8

const (
	Continue Status = iota
	Done
)

// Task is a cooperative multi-frame animation
// Advance performs one frame of work and yields back to the frame scheduler
type Task interface {
	Advance(dt time.Duration) Status
}

// TaskFunc adapts a function to Task
type TaskFunc func(dt time.Duration) Status

func (f TaskFunc) Advance(dt time.Duration) Status { return f(dt) }

type taskState uint8

const (
	taskRunning taskState = iota
	taskDone
	taskCancelled
)

// Handle tracks one started task; a nil handle is idle
type Handle struct {
	task    Task
	state   taskState
	started uint64 // Runner tick the task was started on
}

// Running reports whether the task is still scheduled
func (h *Handle) Running() bool {
	return h != nil && h.state == taskRunning
}

// Cancel unschedules the task; the task is not advanced again
func (h *Handle) Cancel() {
	if h != nil && h.state == taskRunning {
		h.state = taskCancelled
	}
}

// Runner advances started tasks once per tick
type Runner struct {
	active []*Handle
	tick   uint64
}

// NewRunner creates an empty task runner
func NewRunner() *Runner {
	return &Runner{active: make([]*Handle, 0, 8)}
}

func (r *Runner) Name() string  { return "tasks" }
func (r *Runner) Priority() int { return parameter.PriorityTasks }

// Start runs the first step of t immediately, coroutine style, and schedules the rest
// A task that finishes on its first step returns a handle that is already idle
func (r *Runner) Start(t Task) *Handle {
	h := &Handle{task: t, started: r.tick}
	if t.Advance(0) == Done {
		h.state = taskDone
		return h
	}
	r.active = append(r.active, h)
	return h
}

// Restart cancels the task in slot, if any, and starts t in its place
// slot is left nil when t completes on its first step
func (r *Runner) Restart(slot **Handle, t Task) {
	if slot == nil {
		r.Start(t)
		return
	}
	(*slot).Cancel()
	*slot = nil
	h := r.Start(t)
	if h.Running() {
		*slot = h
	}
}

// Update advances every running task started before this tick
// Tasks started from inside Update wait for the next tick
func (r *Runner) Update(dt time.Duration) {
	count := len(r.active)
	for i := 0; i < count; i++ {
		h := r.active[i]
		if h.state != taskRunning || h.started == r.tick {
			continue
		}
		if h.task.Advance(dt) == Done && h.state == taskRunning {
			h.state = taskDone
		}
	}

	n := 0
	for _, h := range r.active {
		if h.state == taskRunning {
			r.active[n] = h
			n++
		}
	}
	clear(r.active[n:])
	r.active = r.active[:n]
	r.tick++
}

// Len returns the number of scheduled tasks
func (r *Runner) Len() int {
	return len(r.active)
}

// CancelAll unschedules every task
func (r *Runner) CancelAll() {
	for _, h := range r.active {
		h.Cancel()
	}
	clear(r.active)
	r.active = r.active[:0]
}
