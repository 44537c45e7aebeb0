package command

import (
	"github.com/dshills/pixstorm/internal/document"
)

// AddFrame inserts a frame into the image.
type AddFrame struct {
	frame *document.Frame
	index int
	at    int
}

// NewAddFrame creates a command inserting frame at index. An index past
// either end inserts at that end.
func NewAddFrame(frame *document.Frame, index int) *AddFrame {
	return &AddFrame{frame: frame, index: index}
}

func (c *AddFrame) Do(ctx Context) {
	c.at = clampIndex(c.index, ctx.FrameCount())
	ctx.AddFrame(c.frame, c.at)
}
func (c *AddFrame) Undo(ctx Context) { ctx.RemoveFrame(c.at) }
func (c *AddFrame) Name() string     { return "Add Frame" }
func (c *AddFrame) Type() Type       { return Frame }

// RemoveFrame takes a frame out of the image.
type RemoveFrame struct {
	index int
	frame *document.Frame
}

// NewRemoveFrame creates a command removing the frame at index.
func NewRemoveFrame(index int) *RemoveFrame {
	return &RemoveFrame{index: index}
}

func (c *RemoveFrame) Do(ctx Context)   { c.frame = ctx.RemoveFrame(c.index) }
func (c *RemoveFrame) Undo(ctx Context) { ctx.AddFrame(c.frame, c.index) }
func (c *RemoveFrame) Name() string     { return "Remove Frame" }
func (c *RemoveFrame) Type() Type       { return Frame }

// ReorderFrame moves a frame to a new index.
type ReorderFrame struct {
	from int
	to   int
	at   int
}

// NewReorderFrame creates the command. A destination past either end
// moves the frame to that end.
func NewReorderFrame(from, to int) *ReorderFrame {
	return &ReorderFrame{from: from, to: to}
}

func (c *ReorderFrame) Do(ctx Context) {
	c.at = clampIndex(c.to, ctx.FrameCount()-1)
	ctx.ReorderFrame(c.from, c.at)
}
func (c *ReorderFrame) Undo(ctx Context) { ctx.ReorderFrame(c.at, c.from) }
func (c *ReorderFrame) Name() string     { return "Reorder Frame" }
func (c *ReorderFrame) Type() Type       { return Frame }

// clampIndex limits i to [0, hi].
func clampIndex(i, hi int) int {
	return max(0, min(i, hi))
}
