package task

import (
	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/selection"
)

// Result tells the Runner what to do after a task handled an event.
type Result uint8

const (
	// None means nothing changed.
	None Result = iota
	// Draw asks for a redraw of the mirage.
	Draw
	// Push applies the pending command and keeps the task running.
	Push
	// Commit applies the pending command and returns to Idle.
	Commit
	// CommitAndChange applies the pending command and switches to NextTask.
	CommitAndChange
	// Change switches to NextTask, which receives the same event.
	Change
	// Cancel ends the task without a command and returns to Idle.
	Cancel
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case None:
		return "none"
	case Draw:
		return "draw"
	case Push:
		return "push"
	case Commit:
		return "commit"
	case CommitAndChange:
		return "commit-and-change"
	case Change:
		return "change"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Applies reports whether the result carries a command.
func (r Result) Applies() bool {
	return r == Push || r == Commit || r == CommitAndChange
}

// Task is one interactive gesture.
type Task interface {
	// Name returns the task identifier (e.g., "idle", "move").
	Name() string

	// LeftDown handles a primary button press.
	LeftDown(p PosInfo) Result

	// LeftUp handles a primary button release.
	LeftUp(p PosInfo) Result

	// Motion handles pointer movement.
	Motion(p PosInfo) Result

	// RightDown handles a secondary button press.
	RightDown(p PosInfo) Result

	// Preempt finishes the gesture early because another edit is about to
	// be applied. p is the last known pointer position.
	Preempt(p PosInfo) Result

	// Command hands over the pending command. Ownership moves to the
	// caller; a second call returns nil.
	Command() command.Command

	// NextTask returns the task to switch to after Change or
	// CommitAndChange.
	NextTask() Task

	// Mirage returns the working copy of the selection the task is
	// showing, or nil.
	Mirage() *selection.RasterSelection
}

// Options tune gesture handling.
type Options struct {
	// DragThreshold is the distance in pixels a constrained drag has to
	// travel before its axis is locked.
	DragThreshold int
}

// DefaultOptions returns the default gesture options.
func DefaultOptions() Options {
	return Options{DragThreshold: 4}
}

// base provides the bookkeeping shared by all tasks.
type base struct {
	ctx     command.Context
	opts    Options
	pending command.Command
	next    Task
	mirage  *selection.RasterSelection
}

func (b *base) Command() command.Command {
	cmd := b.pending
	b.pending = nil
	return cmd
}

func (b *base) NextTask() Task                     { return b.next }
func (b *base) Mirage() *selection.RasterSelection { return b.mirage }

func (b *base) LeftDown(PosInfo) Result  { return None }
func (b *base) LeftUp(PosInfo) Result    { return None }
func (b *base) Motion(PosInfo) Result    { return None }
func (b *base) RightDown(PosInfo) Result { return None }
func (b *base) Preempt(PosInfo) Result   { return None }

// committed returns the real selection of the target frame.
func (b *base) committed() *selection.RasterSelection {
	return b.ctx.GetRasterSelection()
}

// emit stores cmd as the pending command and returns r.
func (b *base) emit(cmd command.Command, r Result) Result {
	b.pending = cmd
	return r
}
