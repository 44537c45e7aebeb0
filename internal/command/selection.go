package command

import (
	"github.com/dshills/pixstorm/internal/selection"
)

// SetSelection replaces the raster selection state.
type SetSelection struct {
	name     string
	newState selection.State
	oldState selection.State
}

// NewSetSelection creates a command switching from old to new.
func NewSetSelection(newState, oldState selection.State, name string) *SetSelection {
	return &SetSelection{name: name, newState: newState, oldState: oldState}
}

// Do installs the new state.
func (c *SetSelection) Do(ctx Context) {
	ctx.GetRasterSelection().SetState(c.newState)
}

// Undo restores the old state.
func (c *SetSelection) Undo(ctx Context) {
	ctx.GetRasterSelection().SetState(c.oldState)
}

// Name returns the command name.
func (c *SetSelection) Name() string { return c.name }

// Type returns Selection.
func (c *SetSelection) Type() Type { return Selection }

// NewState returns the state installed by Do.
func (c *SetSelection) NewState() selection.State { return c.newState }

// OldState returns the state restored by Undo.
func (c *SetSelection) OldState() selection.State { return c.oldState }

// FloatSelection detaches the selected pixels from the image. It is a
// selection change of its own type so that merge conditions can single it
// out.
type FloatSelection struct {
	SetSelection
}

// NewFloatSelection creates a command switching from the rectangle old to
// the floating state floated.
func NewFloatSelection(floated, old selection.State) *FloatSelection {
	return &FloatSelection{SetSelection{name: "Float Selection", newState: floated, oldState: old}}
}

// IsFloatSelection reports whether cmd is a FloatSelection.
func IsFloatSelection(cmd Command) bool {
	_, ok := cmd.(*FloatSelection)
	return ok
}

// SetSelectionOptions replaces the stamping options of the selection.
type SetSelectionOptions struct {
	name       string
	newOptions selection.Options
	oldOptions selection.Options
}

// NewSetSelectionOptions creates an options change.
func NewSetSelectionOptions(newOptions, oldOptions selection.Options, name string) *SetSelectionOptions {
	return &SetSelectionOptions{name: name, newOptions: newOptions, oldOptions: oldOptions}
}

// Do installs the new options.
func (c *SetSelectionOptions) Do(ctx Context) {
	ctx.GetRasterSelection().SetOptions(c.newOptions)
}

// Undo restores the old options.
func (c *SetSelectionOptions) Undo(ctx Context) {
	ctx.GetRasterSelection().SetOptions(c.oldOptions)
}

// Name returns the command name.
func (c *SetSelectionOptions) Name() string { return c.name }

// Type returns Selection.
func (c *SetSelectionOptions) Type() Type { return Selection }

// StampFloating draws a floating selection onto the frame bitmap. It
// leaves the selection itself alone; pair it with a SetSelection to
// deselect.
type StampFloating struct {
	state    selection.State
	options  selection.Options
	snapshot regionSnapshot
}

// NewStampFloating creates a stamp of state using options.
func NewStampFloating(state selection.State, options selection.Options) *StampFloating {
	if !state.Floating() {
		panic("command: stamp of non-floating selection")
	}
	return &StampFloating{state: state, options: options}
}

// Do stamps the floating pixels, keeping the pixels it covers.
func (c *StampFloating) Do(ctx Context) {
	dc := ctx.GetDC()
	c.snapshot = takeSnapshot(dc, c.state.AffectedRect())
	selection.Stamp(dc, c.state, c.options)
}

// Undo puts back the covered pixels.
func (c *StampFloating) Undo(ctx Context) {
	c.snapshot.restore(ctx.GetDC())
}

// Name returns "Stamp Selection".
func (c *StampFloating) Name() string { return "Stamp Selection" }

// Type returns Raster.
func (c *StampFloating) Type() Type { return Raster }

// Deselect returns the command that clears sel: a floating selection is
// stamped first.
func Deselect(sel *selection.RasterSelection) Command {
	st := sel.GetState()
	clearCmd := NewSetSelection(selection.EmptyState(), st, "Deselect")
	if !st.Floating() {
		return clearCmd
	}
	return PerhapsBunch(Hybrid, "Deselect", []Command{
		NewStampFloating(st, sel.GetOptions()),
		clearCmd,
	})
}

// StampAndDeselect always returns a Bunch stamping and clearing the
// floating selection sel, with cond attached so that the next selection
// can merge into the same undo step.
func StampAndDeselect(sel *selection.RasterSelection, cond MergeCondition) *Bunch {
	st := sel.GetState()
	return NewCommandBunch(Hybrid, "Deselect", []Command{
		NewStampFloating(st, sel.GetOptions()),
		NewSetSelection(selection.EmptyState(), st, "Deselect"),
	}, cond)
}
