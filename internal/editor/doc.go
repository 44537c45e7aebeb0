// Package editor ties one image, its undo history and the interactive
// selection tasks together behind a single Session.
//
// A Session is the surface a front end drives: pointer events go to the
// task runner, menu actions become commands applied through the history,
// and rendering asks VisibleSelection for what to draw. Any gesture in
// progress is finished before a menu action is applied so that the two
// never interleave in the undo list.
//
// Sessions are not safe for concurrent use.
package editor
