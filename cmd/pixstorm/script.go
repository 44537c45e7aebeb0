package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/pixstorm/internal/document"
	"github.com/dshills/pixstorm/internal/editor"
	"github.com/dshills/pixstorm/internal/history"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/task"
)

// Script errors.
var (
	// ErrUnknownAction indicates a step names an action that does not exist.
	ErrUnknownAction = errors.New("unknown action")

	// ErrBadArgument indicates a step argument is missing or malformed.
	ErrBadArgument = errors.New("bad argument")

	// ErrUnknownCheckpoint indicates a rewind or replay names a checkpoint
	// no earlier step created.
	ErrUnknownCheckpoint = errors.New("unknown checkpoint")
)

// Script is a recorded sequence of editing steps.
//
//	[[step]]
//	action = "drag"
//	from = [2, 2]
//	to = [10, 8]
//
//	[[step]]
//	action = "undo"
//
// With atomic set the whole script becomes one undo entry named name, and
// a failing step reverts every step before it.
type Script struct {
	Name   string `toml:"name"`
	Atomic bool   `toml:"atomic"`
	Steps  []Step `toml:"step"`
}

// Step is one scripted action. Which fields are used depends on Action.
type Step struct {
	Action  string   `toml:"action"`
	At      []int    `toml:"at"`
	From    []int    `toml:"from"`
	To      []int    `toml:"to"`
	By      []int    `toml:"by"`
	Size    []int    `toml:"size"`
	Button  string   `toml:"button"`
	Mods    []string `toml:"mods"`
	Color   string   `toml:"color"`
	Name    string   `toml:"name"`
	Quality string   `toml:"quality"`
	Index   int      `toml:"index"`
	Target  int      `toml:"target"`
	Objects []string `toml:"objects"`
}

// StepError reports which step of a script failed.
type StepError struct {
	Index  int
	Action string
	Err    error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// ParseScript decodes a script. Unknown keys are rejected.
func ParseScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return &s, nil
}

// Run plays every step against the session and stops at the first error.
func (s *Script) Run(sess *editor.Session) error {
	if !s.Atomic {
		return s.play(sess)
	}
	name := s.Name
	if name == "" {
		name = "Script"
	}
	return sess.Transaction(name, func() error { return s.play(sess) })
}

func (s *Script) play(sess *editor.Session) error {
	marks := make(map[string]history.Checkpoint)
	for i, st := range s.Steps {
		if err := st.run(sess, marks); err != nil {
			return &StepError{Index: i, Action: st.Action, Err: err}
		}
	}
	return nil
}

func (st Step) run(sess *editor.Session, marks map[string]history.Checkpoint) error {
	switch st.Action {
	case "press":
		p, err := st.pos(st.At, "at")
		if err != nil {
			return err
		}
		if p.Button == task.ButtonRight {
			sess.RightDown(p)
		} else {
			sess.LeftDown(p)
		}
	case "motion":
		p, err := st.pos(st.At, "at")
		if err != nil {
			return err
		}
		sess.Motion(p)
	case "release":
		p, err := st.pos(st.At, "at")
		if err != nil {
			return err
		}
		sess.LeftUp(p)
	case "click":
		p, err := st.pos(st.At, "at")
		if err != nil {
			return err
		}
		if p.Button == task.ButtonRight {
			sess.RightDown(p)
			return nil
		}
		sess.LeftDown(p)
		sess.LeftUp(p)
	case "drag":
		from, err := st.pos(st.From, "from")
		if err != nil {
			return err
		}
		to, err := st.pos(st.To, "to")
		if err != nil {
			return err
		}
		sess.LeftDown(from)
		sess.Motion(to)
		sess.LeftUp(to)
	case "undo":
		return sess.Undo()
	case "redo":
		return sess.Redo()
	case "dwim":
		return sess.ApplyDWIM()
	case "deselect":
		sess.Deselect()
	case "select_all":
		sess.SelectAll()
	case "paste":
		return st.paste(sess)
	case "delete":
		return sess.Delete()
	case "crop":
		return sess.Crop()
	case "rescale":
		size, err := point(st.Size, "size")
		if err != nil {
			return err
		}
		q := raster.QualityBilinear
		if st.Quality == "nearest" {
			q = raster.QualityNearest
		}
		return sess.Rescale(size.X, size.Y, q)
	case "nudge":
		d, err := point(st.By, "by")
		if err != nil {
			return err
		}
		return sess.Nudge(d)
	case "bundle_open":
		sess.OpenBundle()
	case "bundle_close":
		sess.CloseBundle(st.Name)
	case "checkpoint":
		if st.Name == "" {
			return fmt.Errorf("%w: checkpoint needs a name", ErrBadArgument)
		}
		marks[st.Name] = sess.Checkpoint()
	case "rewind", "replay":
		cp, ok := marks[st.Name]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownCheckpoint, st.Name)
		}
		if st.Action == "rewind" {
			sess.Rewind(cp)
		} else {
			sess.Replay(cp)
		}
	case "add_frame":
		_, err := sess.AddFrame(st.Index)
		return err
	case "duplicate_frame":
		_, err := sess.DuplicateFrame()
		return err
	case "remove_frame":
		return sess.RemoveFrame(st.Index)
	case "reorder_frame":
		return sess.ReorderFrame(st.Index, st.Target)
	case "select_frame":
		return sess.SelectFrame(st.Index)
	case "add_object":
		return st.addObject(sess)
	case "move_objects":
		objs, err := st.objects(sess)
		if err != nil {
			return err
		}
		d, err := point(st.By, "by")
		if err != nil {
			return err
		}
		return sess.MoveObjects(objs, d)
	case "delete_object", "object_z", "flatten_object":
		objs, err := st.objects(sess)
		if err != nil {
			return err
		}
		if len(objs) != 1 {
			return fmt.Errorf("%w: %s takes one object", ErrBadArgument, st.Action)
		}
		switch st.Action {
		case "delete_object":
			return sess.DeleteObject(objs[0])
		case "object_z":
			return sess.SetObjectZ(objs[0], st.Index)
		}
		return sess.FlattenObject(objs[0])
	case "flatten_objects":
		return sess.FlattenObjects()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
	return nil
}

// paste floats a solid block of the step's colour.
func (st Step) paste(sess *editor.Session) error {
	at, err := point(st.At, "at")
	if err != nil {
		return err
	}
	size, err := point(st.Size, "size")
	if err != nil {
		return err
	}
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: size %v", ErrBadArgument, size)
	}
	paint, err := raster.ParsePaint(st.Color)
	if err != nil {
		return fmt.Errorf("%w: color: %w", ErrBadArgument, err)
	}
	sess.Paste(raster.NewBitmap(size.X, size.Y, paint), at)
	return nil
}

// addObject places a solid rectangle named by the step on the current
// frame.
func (st Step) addObject(sess *editor.Session) error {
	if st.Name == "" {
		return fmt.Errorf("%w: object needs a name", ErrBadArgument)
	}
	at, err := point(st.At, "at")
	if err != nil {
		return err
	}
	size, err := point(st.Size, "size")
	if err != nil {
		return err
	}
	paint, err := raster.ParsePaint(st.Color)
	if err != nil {
		return fmt.Errorf("%w: color: %w", ErrBadArgument, err)
	}
	_, err = sess.AddObject(st.Name, raster.Rect(at.X, at.Y, size.X, size.Y), paint)
	return err
}

// objects resolves the step's object names on the current frame.
func (st Step) objects(sess *editor.Session) ([]*document.Object, error) {
	if len(st.Objects) == 0 {
		return nil, fmt.Errorf("%w: objects is empty", ErrBadArgument)
	}
	out := make([]*document.Object, 0, len(st.Objects))
	for _, name := range st.Objects {
		obj, ok := sess.Object(name)
		if !ok {
			return nil, fmt.Errorf("object %q: %w", name, editor.ErrNoObject)
		}
		out = append(out, obj)
	}
	return out, nil
}

func (st Step) pos(xy []int, field string) (task.PosInfo, error) {
	pt, err := point(xy, field)
	if err != nil {
		return task.PosInfo{}, err
	}
	p := task.PosInfo{Pos: pt, Button: task.ButtonLeft}
	switch strings.ToLower(st.Button) {
	case "", "left":
	case "right":
		p.Button = task.ButtonRight
	case "middle":
		p.Button = task.ButtonMiddle
	default:
		return p, fmt.Errorf("%w: button %q", ErrBadArgument, st.Button)
	}
	for _, m := range st.Mods {
		switch strings.ToLower(m) {
		case "shift":
			p.Modifiers |= task.ModShift
		case "ctrl":
			p.Modifiers |= task.ModCtrl
		case "alt":
			p.Modifiers |= task.ModAlt
		default:
			return p, fmt.Errorf("%w: modifier %q", ErrBadArgument, m)
		}
	}
	return p, nil
}

func point(xy []int, field string) (raster.IntPoint, error) {
	if len(xy) != 2 {
		return raster.IntPoint{}, fmt.Errorf("%w: %s needs two numbers", ErrBadArgument, field)
	}
	return raster.Pt(xy[0], xy[1]), nil
}
