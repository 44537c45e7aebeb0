package editor

import (
	"fmt"

	"github.com/dshills/pixstorm/internal/command"
	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/raster"
)

// Object returns the topmost object of the current frame named name.
func (s *Session) Object(name string) (*document.Object, bool) {
	objs := s.frame.Objects()
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i].Name == name {
			return objs[i], true
		}
	}
	return nil, false
}

// AddObject places a new object on top of the current frame's stack.
func (s *Session) AddObject(name string, rect raster.IntRect, fill raster.Paint) (*document.Object, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("object %q at %v: %w", name, rect, ErrInvalidSize)
	}
	obj := document.NewObject(name, rect, fill)
	s.apply(command.NewAddObject(obj, len(s.frame.Objects())))
	return obj, nil
}

// MoveObjects moves objs by d. Consecutive moves of the same objects share
// one undo entry.
func (s *Session) MoveObjects(objs []*document.Object, d raster.IntPoint) error {
	if len(objs) == 0 {
		return ErrNoObject
	}
	for _, o := range objs {
		if err := s.checkObject(o); err != nil {
			return err
		}
	}
	s.apply(command.MoveObjects(objs, d))
	return nil
}

// DeleteObject removes obj from the current frame.
func (s *Session) DeleteObject(obj *document.Object) error {
	if err := s.checkObject(obj); err != nil {
		return err
	}
	s.apply(command.NewDeleteObject(obj))
	return nil
}

// SetObjectZ restacks obj to index z, 0 being the bottom.
func (s *Session) SetObjectZ(obj *document.Object, z int) error {
	if err := s.checkObject(obj); err != nil {
		return err
	}
	z = max(0, min(z, len(s.frame.Objects())-1))
	if s.frame.ObjectZ(obj) == z {
		return nil
	}
	s.apply(command.NewSetObjectZ(obj, z))
	return nil
}

// FlattenObject draws obj into the frame pixels and removes it.
func (s *Session) FlattenObject(obj *document.Object) error {
	if err := s.checkObject(obj); err != nil {
		return err
	}
	s.apply(command.FlattenObject(obj))
	return nil
}

// FlattenObjects draws every object of the current frame, bottom first, as
// one undo entry. Inside an open bundle the objects join that bundle.
func (s *Session) FlattenObjects() error {
	objs := s.frame.Objects()
	if len(objs) == 0 {
		return nil
	}
	flatten := func() error {
		for _, o := range objs {
			if err := s.FlattenObject(o); err != nil {
				return err
			}
		}
		return nil
	}
	if s.history.IsBundling() {
		return flatten()
	}
	return s.Transaction("Flatten Objects", flatten)
}

func (s *Session) checkObject(obj *document.Object) error {
	if obj == nil || s.frame.ObjectZ(obj) < 0 {
		return ErrNoObject
	}
	return nil
}
