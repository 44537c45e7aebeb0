// Package history keeps the undo and redo timelines of an image.
//
// Every edit reaches the image through History.Apply, which runs the
// command against its target frame and records it on the undo list.
// Commands are exclusively owned by the history once applied: an entry
// moves between the undo and redo lists and is never shared.
//
// # Merging
//
// When the command on top of the undo list is a command.Bunch with an open
// merge condition, Apply first offers the new command to it. An accepted
// command joins the existing entry instead of creating a new one:
//
//	h.Apply(rectangleBunch, true, frameID) // new entry
//	h.Apply(floatCmd, true, frameID)       // folded into the rectangle entry
//
// # Bundles
//
// OpenUndoBundle and CloseUndoBundle bracket several Apply calls that
// should undo as one step:
//
//	h.OpenUndoBundle()
//	h.Apply(a, true, frameID)
//	h.Apply(b, true, frameID)
//	h.CloseUndoBundle("Crop")
//
// BundleScope and Transaction wrap the same pair for use with defer.
//
// # Dirty tracking
//
// Each entry carries a UUID. LastModifyingID returns the ID of the top-most
// entry that changed the document rather than only the selection; MarkSaved
// records it and Dirty compares against it.
package history
