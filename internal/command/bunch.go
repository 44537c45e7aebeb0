package command

import "fmt"

// Bunch is an ordered group of commands applied and undone as one step.
type Bunch struct {
	typ  Type
	name string
	cmds []Command
	cond MergeCondition
}

// PerhapsBunch wraps cmds in a Bunch unless there is exactly one, in which
// case that command is returned as is.
func PerhapsBunch(typ Type, name string, cmds []Command) Command {
	if len(cmds) == 1 {
		return cmds[0]
	}
	return NewCommandBunch(typ, name, cmds, nil)
}

// NewCommandBunch always builds a Bunch, even around a single command, so
// that cond can be attached. cond may be nil.
func NewCommandBunch(typ Type, name string, cmds []Command, cond MergeCondition) *Bunch {
	b := &Bunch{typ: typ, name: name, cond: cond}
	for _, c := range cmds {
		b.add(c)
	}
	return b
}

// Do applies the children in order.
func (b *Bunch) Do(ctx Context) {
	for _, c := range b.cmds {
		c.Do(ctx)
	}
}

// Undo reverses the children in reverse order.
func (b *Bunch) Undo(ctx Context) {
	for i := len(b.cmds) - 1; i >= 0; i-- {
		b.cmds[i].Undo(ctx)
	}
}

// Name returns the bunch name, falling back to a description of the
// children.
func (b *Bunch) Name() string {
	if b.name != "" {
		return b.name
	}
	if len(b.cmds) == 1 {
		return b.cmds[0].Name()
	}
	return fmt.Sprintf("%d operations", len(b.cmds))
}

// SetName renames the bunch.
func (b *Bunch) SetName(name string) { b.name = name }

// Type returns Hybrid when the children are of mixed types.
func (b *Bunch) Type() Type { return b.typ }

// Len returns the number of children.
func (b *Bunch) Len() int { return len(b.cmds) }

// Commands returns the children in application order.
func (b *Bunch) Commands() []Command {
	return append([]Command(nil), b.cmds...)
}

// Condition returns the attached merge condition, or nil once closed.
func (b *Bunch) Condition() MergeCondition { return b.cond }

// Open reports whether later commands may still merge into the bunch.
func (b *Bunch) Open() bool { return b.cond != nil }

// Close detaches the merge condition; nothing merges afterwards.
func (b *Bunch) Close() {
	if b.cond != nil {
		b.cond.Close()
		b.cond = nil
	}
}

// TryAppend offers cmd to the merge condition. When accepted, cmd is folded
// into the bunch and true is returned; the caller is still responsible for
// running cmd.Do. A bunch candidate contributes its children and, if it
// carries a condition of its own, that condition replaces the current one.
func (b *Bunch) TryAppend(cmd Command) bool {
	if b.cond == nil || !b.cond.Append(cmd) {
		return false
	}
	if b.cond.AssumeName() {
		b.name = cmd.Name()
	}
	if other, ok := cmd.(*Bunch); ok && other.cond != nil {
		b.cond.Close()
		b.cond = other.cond
		other.cond = nil
	}
	b.add(cmd)
	return true
}

// TryMerge folds a whole bunch into b when both carry conditions and b's
// condition is satisfied by other's. The caller runs other.Do.
func (b *Bunch) TryMerge(other *Bunch) bool {
	if b.cond == nil || other.cond == nil || !b.cond.Satisfied(other.cond) {
		return false
	}
	if b.cond.AssumeName() {
		b.name = other.Name()
	}
	other.cond.Close()
	other.cond = nil
	b.add(other)
	return true
}

// Add appends cmd unconditionally. Used for explicit bundles.
func (b *Bunch) Add(cmd Command) {
	b.add(cmd)
}

// add takes ownership of cmd. Bunches are flattened into their children;
// the flattened bunch keeps its own list so that the caller can still run
// it.
func (b *Bunch) add(cmd Command) {
	if b.typ != Hybrid && cmd.Type() != b.typ {
		b.typ = Hybrid
	}
	if other, ok := cmd.(*Bunch); ok {
		b.cmds = append(b.cmds, other.cmds...)
		return
	}
	b.cmds = append(b.cmds, cmd)
}
