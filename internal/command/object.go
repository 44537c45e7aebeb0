package command

import (
	"github.com/google/uuid"

	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/raster"
)

// AddObject inserts an object into the frame.
type AddObject struct {
	obj *document.Object
	z   int
}

// NewAddObject creates a command adding obj at stacking index z.
func NewAddObject(obj *document.Object, z int) *AddObject {
	return &AddObject{obj: obj, z: z}
}

func (c *AddObject) Do(ctx Context)   { ctx.AddObject(c.obj, c.z) }
func (c *AddObject) Undo(ctx Context) { ctx.RemoveObject(c.obj) }
func (c *AddObject) Name() string     { return "Add " + c.obj.Name }
func (c *AddObject) Type() Type       { return Object }

// DeleteObject removes an object, remembering where it was stacked.
type DeleteObject struct {
	obj *document.Object
	z   int
}

// NewDeleteObject creates the command.
func NewDeleteObject(obj *document.Object) *DeleteObject {
	return &DeleteObject{obj: obj}
}

func (c *DeleteObject) Do(ctx Context)   { c.z = ctx.RemoveObject(c.obj) }
func (c *DeleteObject) Undo(ctx Context) { ctx.AddObject(c.obj, c.z) }
func (c *DeleteObject) Name() string     { return "Delete " + c.obj.Name }
func (c *DeleteObject) Type() Type       { return Object }

// SetObjectZ restacks an object.
type SetObjectZ struct {
	obj  *document.Object
	newZ int
	oldZ int
}

// NewSetObjectZ creates a command moving obj to stacking index z.
func NewSetObjectZ(obj *document.Object, z int) *SetObjectZ {
	return &SetObjectZ{obj: obj, newZ: z}
}

func (c *SetObjectZ) Do(ctx Context) {
	c.oldZ = ctx.GetObjectZ(c.obj)
	ctx.SetObjectZ(c.obj, c.newZ)
}

func (c *SetObjectZ) Undo(ctx Context) { ctx.SetObjectZ(c.obj, c.oldZ) }
func (c *SetObjectZ) Name() string     { return "Change Z-order" }
func (c *SetObjectZ) Type() Type       { return Object }

// MoveObject translates one object.
type MoveObject struct {
	obj   *document.Object
	delta raster.IntPoint
}

// NewMoveObject creates the command.
func NewMoveObject(obj *document.Object, delta raster.IntPoint) *MoveObject {
	return &MoveObject{obj: obj, delta: delta}
}

func (c *MoveObject) Do(Context) { c.obj.Rect = c.obj.Rect.Translate(c.delta) }

func (c *MoveObject) Undo(Context) {
	c.obj.Rect = c.obj.Rect.Translate(raster.Pt(-c.delta.X, -c.delta.Y))
}

func (c *MoveObject) Name() string { return "Move " + c.obj.Name }
func (c *MoveObject) Type() Type   { return Object }

// MoveObjects moves every object by delta. Repeated moves of the same
// objects merge into a single undo step.
func MoveObjects(objs []*document.Object, delta raster.IntPoint) *Bunch {
	cmds := make([]Command, len(objs))
	ids := make([]uuid.UUID, len(objs))
	for i, o := range objs {
		cmds[i] = NewMoveObject(o, delta)
		ids[i] = o.ID
	}
	name := "Move Objects"
	if len(objs) == 1 {
		name = "Move " + objs[0].Name
	}
	return NewCommandBunch(Object, name, cmds, NewMergeIfSameObjects(ids))
}

// FlattenObject draws obj onto the bitmap and deletes it. Undo brings the
// object back before restoring the pixels.
func FlattenObject(obj *document.Object) Command {
	return PerhapsBunch(Hybrid, "Flatten "+obj.Name, []Command{
		NewDrawObject(obj),
		NewDeleteObject(obj),
	})
}
