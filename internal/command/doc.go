// Package command provides the reversible edit operations of the editor.
//
// Every edit is a Command with Do and Undo methods that run against a
// Context, the target frame of an image. Commands are tagged with a Type:
//
//   - Raster: pixel edits (fill, stamp, resize)
//   - Object: object edits (add, delete, restack, move)
//   - Selection: raster selection changes; these do not dirty the document
//   - Frame: frame list edits (add, remove, reorder)
//   - Hybrid: bunches whose children have different types
//
// # Bunches
//
// A Bunch groups commands into one undo step. Do runs the children in order
// and Undo runs them in reverse, since later children may depend on state
// produced by earlier ones:
//
//	cmd := command.PerhapsBunch(command.Hybrid, "Flatten", []command.Command{
//	    command.NewDrawObject(obj),
//	    command.NewDeleteObject(obj),
//	})
//
// PerhapsBunch returns a single command unchanged; NewCommandBunch always
// builds a Bunch so that a MergeCondition can be attached.
//
// # Merge conditions
//
// A MergeCondition attached to a Bunch lets the history fold later commands
// into it instead of creating new undo entries. Append decides for a single
// incoming command; Satisfied compares two whole bunches. Conditions of
// different kinds are never satisfied by each other.
//
// # Alternates
//
// Commands implementing Alternative can be swapped for a precomputed
// alternate result after they have been applied (DWIM). The alternate of
// an alternate is the original.
package command
