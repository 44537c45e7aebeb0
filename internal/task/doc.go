// Package task implements the interactive gestures of the selection tool.
//
// A Task receives pointer events and decides what they mean. It never
// changes the image itself: it builds commands and reports what the Runner
// should do with them through its Result. Three tasks exist:
//
//   - Idle waits for a press and hands over to Move or Rectangle.
//   - Move drags the selection, floating it first if necessary.
//   - Rectangle drags out a new rectangular selection.
//
// While a gesture is in progress the task keeps a private working copy of
// the selection, the mirage, so that the drag can be shown without touching
// the committed selection. The Runner publishes the mirage through a weak
// pointer; once the task ends the pointer goes nil and renderers fall back
// to the committed selection.
package task
