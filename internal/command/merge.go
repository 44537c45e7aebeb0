package command

import (
	"slices"

	"github.com/google/uuid"
)

// MergeCondition decides whether later commands coalesce into the bunch it
// is attached to.
type MergeCondition interface {
	// Append reports whether cmd should join the bunch instead of becoming
	// its own undo entry.
	Append(cmd Command) bool

	// Satisfied reports whether a whole bunch carrying other should merge
	// into the bunch carrying this condition.
	Satisfied(other MergeCondition) bool

	// AssumeName reports whether the bunch takes the name of what is
	// appended to it.
	AssumeName() bool

	// Close stops the condition from accepting anything further.
	Close()
}

// AppendOnce accepts the first candidate matching a predicate and then
// closes.
type AppendOnce struct {
	match      func(Command) bool
	assumeName bool
	closed     bool
}

// NewAppendOnce creates an AppendOnce condition.
func NewAppendOnce(match func(Command) bool, assumeName bool) *AppendOnce {
	return &AppendOnce{match: match, assumeName: assumeName}
}

// Append accepts the first matching command.
func (c *AppendOnce) Append(cmd Command) bool {
	if c.closed || !c.match(cmd) {
		return false
	}
	c.closed = true
	return true
}

// Satisfied is always false; only single commands are appended.
func (c *AppendOnce) Satisfied(MergeCondition) bool { return false }

// AssumeName reports the configured naming behaviour.
func (c *AppendOnce) AssumeName() bool { return c.assumeName }

// Close stops accepting.
func (c *AppendOnce) Close() { c.closed = true }

// AppendAlways accepts every command until closed. The history uses it for
// explicit undo bundles.
type AppendAlways struct {
	closed bool
}

// NewAppendAlways creates an AppendAlways condition.
func NewAppendAlways() *AppendAlways {
	return &AppendAlways{}
}

// Append accepts anything while open.
func (c *AppendAlways) Append(Command) bool { return !c.closed }

// Satisfied is always false.
func (c *AppendAlways) Satisfied(MergeCondition) bool { return false }

// AssumeName is false; bundles are named when closed.
func (c *AppendAlways) AssumeName() bool { return false }

// Close stops accepting.
func (c *AppendAlways) Close() { c.closed = true }

// MergeIfSameObjects merges consecutive bunches that act on the same set of
// objects, such as repeated nudges of one object.
type MergeIfSameObjects struct {
	ids    []uuid.UUID
	closed bool
}

// NewMergeIfSameObjects creates the condition for the given object IDs.
func NewMergeIfSameObjects(ids []uuid.UUID) *MergeIfSameObjects {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return &MergeIfSameObjects{ids: sorted}
}

// Append is always false.
func (c *MergeIfSameObjects) Append(Command) bool { return false }

// Satisfied reports whether other refers to exactly the same objects.
func (c *MergeIfSameObjects) Satisfied(other MergeCondition) bool {
	o, ok := other.(*MergeIfSameObjects)
	if !ok || c.closed {
		return false
	}
	return slices.Equal(c.ids, o.ids)
}

// AssumeName is false.
func (c *MergeIfSameObjects) AssumeName() bool { return false }

// Close stops merging.
func (c *MergeIfSameObjects) Close() { c.closed = true }

// MergeSelectionNudge merges consecutive selection nudges on one frame so
// that a multi-step keyboard move replays as one undo step.
type MergeSelectionNudge struct {
	frameID uuid.UUID
	closed  bool
}

// NewMergeSelectionNudge creates the condition for nudges on the frame
// with the given ID.
func NewMergeSelectionNudge(frameID uuid.UUID) *MergeSelectionNudge {
	return &MergeSelectionNudge{frameID: frameID}
}

// Append is always false.
func (c *MergeSelectionNudge) Append(Command) bool { return false }

// Satisfied reports whether other is a nudge of the same frame.
func (c *MergeSelectionNudge) Satisfied(other MergeCondition) bool {
	o, ok := other.(*MergeSelectionNudge)
	return ok && !c.closed && o.frameID == c.frameID
}

// AssumeName is false.
func (c *MergeSelectionNudge) AssumeName() bool { return false }

// Close stops merging.
func (c *MergeSelectionNudge) Close() { c.closed = true }
