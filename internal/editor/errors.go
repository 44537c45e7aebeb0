package editor

import "errors"

// Errors returned by session operations.
var (
	// ErrNothingToUndo indicates the undo list is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo list is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoAlternate indicates the last command has no alternate result.
	ErrNoAlternate = errors.New("last command has no alternate")

	// ErrNoSelection indicates the operation needs a selection.
	ErrNoSelection = errors.New("nothing selected")

	// ErrInvalidSize indicates a non-positive image size.
	ErrInvalidSize = errors.New("invalid size")

	// ErrNoFrame indicates a frame index outside the image.
	ErrNoFrame = errors.New("no such frame")

	// ErrLastFrame indicates an attempt to remove the only frame.
	ErrLastFrame = errors.New("cannot remove the last frame")

	// ErrNoObject indicates an object that is not in the current frame.
	ErrNoObject = errors.New("no such object")

	// ErrBundleOpen indicates an operation that cannot run inside a bundle.
	ErrBundleOpen = errors.New("undo bundle open")
)
