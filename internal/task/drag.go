package task

import "github.com/dshills/pixstorm/internal/raster"

// axis is the direction a constrained drag is locked to.
type axis uint8

const (
	axisFree axis = iota
	axisHorizontal
	axisVertical
)

// dragTracker tracks pointer drag state.
type dragTracker struct {
	// active indicates a drag is in progress.
	active bool

	// startPos is where the drag started.
	startPos raster.IntPoint

	// currentPos is the current drag position.
	currentPos raster.IntPoint

	// lock is the axis chosen once a constrained drag passed the threshold.
	lock axis
}

// start begins a new drag operation.
func (t *dragTracker) start(pos raster.IntPoint) {
	t.active = true
	t.startPos = pos
	t.currentPos = pos
	t.lock = axisFree
}

// update records the current drag position. With constrain set, the drag
// is locked to its dominant axis as soon as it has travelled more than
// threshold pixels along either axis; the lock holds until the drag ends
// or constrain is released.
func (t *dragTracker) update(pos raster.IntPoint, constrain bool, threshold int) {
	if !t.active {
		return
	}
	t.currentPos = pos
	if !constrain {
		t.lock = axisFree
		return
	}
	if t.lock != axisFree {
		return
	}
	d := pos.Sub(t.startPos)
	dx, dy := abs(d.X), abs(d.Y)
	if max(dx, dy) <= threshold {
		return
	}
	if dx >= dy {
		t.lock = axisHorizontal
	} else {
		t.lock = axisVertical
	}
}

// end ends the current drag operation.
func (t *dragTracker) end() {
	*t = dragTracker{}
}

// isActive returns true if a drag is in progress.
func (t *dragTracker) isActive() bool {
	return t.active
}

// delta returns the distance dragged from start, projected onto the
// locked axis if there is one.
func (t *dragTracker) delta() raster.IntPoint {
	d := t.currentPos.Sub(t.startPos)
	switch t.lock {
	case axisHorizontal:
		d.Y = 0
	case axisVertical:
		d.X = 0
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
