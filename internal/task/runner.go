package task

import (
	"log/slog"
	"weak"

	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/selection"
)

// Applier runs commands produced by tasks. *history.History implements it.
type Applier interface {
	Apply(cmd command.Command, clearRedo bool, frameID uuid.UUID) bool
}

// TaskChangeCallback is called when the active task changes.
type TaskChangeCallback func(from, to Task)

// maxChain bounds how many times one event may be handed on through
// Change results.
const maxChain = 4

// Runner drives the active task of one frame and applies what it produces.
type Runner struct {
	applier Applier
	ctx     command.Context
	frameID uuid.UUID
	opts    Options

	current Task
	last    PosInfo

	// mirage observes the active task's working copy without keeping it
	// alive.
	mirage weak.Pointer[selection.RasterSelection]

	callbacks []TaskChangeCallback
	logger    *slog.Logger
}

// NewRunner creates a runner for the frame with the given ID. ctx must be
// the command context of that frame.
func NewRunner(applier Applier, ctx command.Context, frameID uuid.UUID, opts Options) *Runner {
	r := &Runner{applier: applier, ctx: ctx, frameID: frameID, opts: opts, logger: logging.For("task")}
	r.current = NewIdle(ctx, opts)
	return r
}

// Current returns the active task.
func (r *Runner) Current() Task { return r.current }

// FrameID returns the ID of the frame the runner works on.
func (r *Runner) FrameID() uuid.UUID { return r.frameID }

// Options returns the gesture options.
func (r *Runner) Options() Options { return r.opts }

// SetOptions changes the gesture options. A gesture in progress keeps the
// options it started with.
func (r *Runner) SetOptions(opts Options) { r.opts = opts }

// OnTaskChange registers a callback for task switches.
func (r *Runner) OnTaskChange(cb TaskChangeCallback) {
	r.callbacks = append(r.callbacks, cb)
}

// Mirage returns the selection the active task is showing, or nil when
// the committed selection should be shown.
func (r *Runner) Mirage() *selection.RasterSelection {
	return r.mirage.Value()
}

// Busy reports whether a gesture is in progress.
func (r *Runner) Busy() bool {
	_, idle := r.current.(*Idle)
	return !idle
}

// LeftDown dispatches a primary button press.
func (r *Runner) LeftDown(p PosInfo) Result {
	return r.dispatch(p, Task.LeftDown)
}

// LeftUp dispatches a primary button release. A release away from the
// last known position is preceded by a motion to it.
func (r *Runner) LeftUp(p PosInfo) Result {
	if p.Pos != r.last.Pos {
		r.Motion(p)
	}
	return r.dispatch(p, Task.LeftUp)
}

// Motion dispatches pointer movement.
func (r *Runner) Motion(p PosInfo) Result {
	return r.dispatch(p, Task.Motion)
}

// RightDown dispatches a secondary button press.
func (r *Runner) RightDown(p PosInfo) Result {
	return r.dispatch(p, Task.RightDown)
}

// Preempt finishes any gesture in progress so that an external edit can be
// applied on top of it.
func (r *Runner) Preempt() Result {
	if !r.Busy() {
		return None
	}
	res := r.dispatch(r.last, Task.Preempt)
	if r.Busy() {
		// The task did not end itself.
		r.switchTo(NewIdle(r.ctx, r.opts))
	}
	return res
}

func (r *Runner) dispatch(p PosInfo, handle func(Task, PosInfo) Result) Result {
	r.last = p
	var res Result
	for range maxChain {
		res = handle(r.current, p)
		r.logger.Debug("event", "task", r.current.Name(), "pos", p.Pos, "result", res)

		if res.Applies() {
			if cmd := r.current.Command(); cmd != nil {
				r.applier.Apply(cmd, true, r.frameID)
			}
		}

		switch res {
		case Commit, Cancel:
			r.switchTo(NewIdle(r.ctx, r.opts))
		case Change, CommitAndChange:
			r.switchTo(r.current.NextTask())
			if res == Change {
				// The new task sees the event that started it.
				continue
			}
		}
		break
	}
	r.publish()
	return res
}

func (r *Runner) switchTo(next Task) {
	if next == nil {
		next = NewIdle(r.ctx, r.opts)
	}
	from := r.current
	r.current = next
	r.publish()
	for _, cb := range r.callbacks {
		if cb != nil {
			cb(from, next)
		}
	}
}

// publish points the mirage at the active task's working copy.
func (r *Runner) publish() {
	if m := r.current.Mirage(); m != nil {
		r.mirage = weak.Make(m)
	} else {
		r.mirage = weak.Pointer[selection.RasterSelection]{}
	}
}
