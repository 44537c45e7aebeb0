package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pixstorm/internal/editor"
	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/raster"
	"github.com/dshills/pixstorm/internal/selection"
)

var red = raster.RGBA(255, 0, 0, 255)

const moveScript = `
[[step]]
action = "drag"
from = [2, 2]
to = [10, 8]

[[step]]
action = "drag"
from = [4, 4]
to = [7, 5]
`

func newTestSession() *editor.Session {
	bmp := raster.NewBitmap(20, 20, raster.White)
	bmp.Fill(raster.Rect(2, 2, 8, 6), red)
	return editor.New(bmp)
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(moveScript))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	want := []Step{
		{Action: "drag", From: []int{2, 2}, To: []int{10, 8}},
		{Action: "drag", From: []int{4, 4}, To: []int{7, 5}},
	}
	if diff := cmp.Diff(want, s.Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScriptUnknownKey(t *testing.T) {
	_, err := ParseScript(strings.NewReader("[[step]]\naction = \"undo\"\ncount = 2\n"))
	if err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRunMoveScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(moveScript + `
[[step]]
action = "undo"
`))
	if err != nil {
		t.Fatal(err)
	}
	sess := newTestSession()
	if err := s.Run(sess); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sel := sess.Selection()
	if !sel.Floating() || sel.GetRect() != raster.Rect(2, 2, 8, 6) {
		t.Errorf("selection = %v, want floating at (2,2,8,6)", sel.GetState())
	}
	if diff := cmp.Diff([]string{"Select Rectangle"}, sess.History().UndoNames()); diff != "" {
		t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunSteps(t *testing.T) {
	tests := []struct {
		name   string
		script string
		check  func(t *testing.T, sess *editor.Session)
	}{
		{
			name:   "select all and delete",
			script: "[[step]]\naction = \"select_all\"\n[[step]]\naction = \"delete\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if red.Matches(sess.Bitmap().At(raster.Pt(3, 3))) {
					t.Error("pixels not erased")
				}
			},
		},
		{
			name:   "paste",
			script: "[[step]]\naction = \"paste\"\nat = [15, 15]\nsize = [2, 2]\ncolor = \"#0000ff\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if got := sess.Selection().GetRect(); got != raster.Rect(15, 15, 2, 2) {
					t.Errorf("rect = %v", got)
				}
			},
		},
		{
			name:   "nudge",
			script: "[[step]]\naction = \"select_all\"\n[[step]]\naction = \"crop\"\n[[step]]\naction = \"drag\"\nfrom = [0, 0]\nto = [4, 4]\n[[step]]\naction = \"nudge\"\nby = [1, 2]\n",
			check: func(t *testing.T, sess *editor.Session) {
				if got := sess.Selection().GetRect(); got != raster.Rect(1, 2, 4, 4) {
					t.Errorf("rect = %v", got)
				}
			},
		},
		{
			name:   "bundle",
			script: "[[step]]\naction = \"bundle_open\"\n[[step]]\naction = \"select_all\"\n[[step]]\naction = \"delete\"\n[[step]]\naction = \"bundle_close\"\nname = \"Clear\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if diff := cmp.Diff([]string{"Clear"}, sess.History().UndoNames()); diff != "" {
					t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "right click deselects",
			script: "[[step]]\naction = \"drag\"\nfrom = [2, 2]\nto = [4, 4]\n[[step]]\naction = \"click\"\nat = [15, 15]\nbutton = \"right\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if !sess.Selection().Empty() {
					t.Errorf("selection = %v", sess.Selection().GetState())
				}
			},
		},
		{
			name:   "constrained drag",
			script: "[[step]]\naction = \"drag\"\nfrom = [2, 2]\nto = [10, 8]\n[[step]]\naction = \"drag\"\nfrom = [4, 4]\nto = [10, 6]\nmods = [\"shift\"]\n",
			check: func(t *testing.T, sess *editor.Session) {
				if got := sess.Selection().GetRect(); got != raster.Rect(8, 2, 8, 6) {
					t.Errorf("rect = %v", got)
				}
			},
		},
		{
			name:   "frames",
			script: "[[step]]\naction = \"add_frame\"\nindex = 1\n[[step]]\naction = \"duplicate_frame\"\n[[step]]\naction = \"reorder_frame\"\nindex = 2\ntarget = 0\n[[step]]\naction = \"remove_frame\"\nindex = 1\n",
			check: func(t *testing.T, sess *editor.Session) {
				if n := sess.Image().FrameCount(); n != 2 {
					t.Fatalf("FrameCount() = %d", n)
				}
				if sess.FrameIndex() != 0 || sess.Image().Frame(1).Bitmap().At(raster.Pt(3, 3)) != raster.White.Color {
					t.Errorf("current frame %d, frame 1 should be blank", sess.FrameIndex())
				}
			},
		},
		{
			name:   "objects",
			script: "[[step]]\naction = \"add_object\"\nname = \"box\"\nat = [12, 12]\nsize = [3, 3]\ncolor = \"#0000ff\"\n[[step]]\naction = \"move_objects\"\nobjects = [\"box\"]\nby = [1, 0]\n[[step]]\naction = \"move_objects\"\nobjects = [\"box\"]\nby = [1, 0]\n[[step]]\naction = \"flatten_objects\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				want := []string{"Flatten Objects", "Move box", "Add box"}
				if diff := cmp.Diff(want, sess.History().UndoNames()); diff != "" {
					t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
				}
				if got := sess.Bitmap().At(raster.Pt(14, 12)); got != raster.RGBA(0, 0, 255, 255).Color {
					t.Errorf("pixel (14,12) = %v", got)
				}
			},
		},
		{
			name:   "checkpoint rewind replay",
			script: "[[step]]\naction = \"checkpoint\"\nname = \"start\"\n[[step]]\naction = \"select_all\"\n[[step]]\naction = \"delete\"\n[[step]]\naction = \"checkpoint\"\nname = \"cleared\"\n[[step]]\naction = \"rewind\"\nname = \"start\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if !red.Matches(sess.Bitmap().At(raster.Pt(3, 3))) || sess.History().CanUndo() {
					t.Error("rewind did not return to the start")
				}
			},
		},
		{
			name:   "atomic",
			script: "name = \"Clear\"\natomic = true\n[[step]]\naction = \"select_all\"\n[[step]]\naction = \"delete\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if diff := cmp.Diff([]string{"Clear"}, sess.History().UndoNames()); diff != "" {
					t.Errorf("UndoNames() mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "rescale and dwim",
			script: "[[step]]\naction = \"rescale\"\nsize = [10, 10]\nquality = \"nearest\"\n[[step]]\naction = \"dwim\"\n",
			check: func(t *testing.T, sess *editor.Session) {
				if got := sess.Bitmap().Bounds(); got != raster.Rect(0, 0, 10, 10) {
					t.Errorf("bounds = %v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScript(strings.NewReader(tt.script))
			if err != nil {
				t.Fatal(err)
			}
			sess := newTestSession()
			if err := s.Run(sess); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			tt.check(t, sess)
		})
	}
}

func TestRunStepErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{"unknown action", "[[step]]\naction = \"rotate\"\n", ErrUnknownAction},
		{"missing point", "[[step]]\naction = \"drag\"\nfrom = [1]\nto = [2, 2]\n", ErrBadArgument},
		{"bad modifier", "[[step]]\naction = \"click\"\nat = [1, 1]\nmods = [\"hyper\"]\n", ErrBadArgument},
		{"bad colour", "[[step]]\naction = \"paste\"\nat = [0, 0]\nsize = [1, 1]\ncolor = \"red\"\n", ErrBadArgument},
		{"nothing to undo", "[[step]]\naction = \"undo\"\n", editor.ErrNothingToUndo},
		{"unknown checkpoint", "[[step]]\naction = \"rewind\"\nname = \"start\"\n", ErrUnknownCheckpoint},
		{"missing object", "[[step]]\naction = \"delete_object\"\nobjects = [\"ghost\"]\n", editor.ErrNoObject},
		{"last frame", "[[step]]\naction = \"remove_frame\"\n", editor.ErrLastFrame},
		{"no such frame", "[[step]]\naction = \"select_frame\"\nindex = 4\n", editor.ErrNoFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScript(strings.NewReader(tt.script))
			if err != nil {
				t.Fatal(err)
			}
			err = s.Run(newTestSession())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() error = %v, want %v", err, tt.want)
			}
			var se *StepError
			if !errors.As(err, &se) || se.Index != 0 {
				t.Errorf("error %v is not a StepError for step 0", err)
			}
		})
	}
}

func TestRunAtomicRollsBack(t *testing.T) {
	s, err := ParseScript(strings.NewReader("atomic = true\n[[step]]\naction = \"select_all\"\n[[step]]\naction = \"delete\"\n[[step]]\naction = \"rotate\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	sess := newTestSession()
	err = s.Run(sess)
	var se *StepError
	if !errors.As(err, &se) || se.Index != 2 || !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Run() error = %v", err)
	}
	if !red.Matches(sess.Bitmap().At(raster.Pt(3, 3))) || sess.History().CanUndo() {
		t.Error("failed atomic script left changes behind")
	}
}

func TestRunEndToEnd(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(logging.Nop()) })
	dir := t.TempDir()

	in := filepath.Join(dir, "in.png")
	src := newTestSession().Bitmap()
	if err := writePNG(in, src); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "moves.toml")
	if err := os.WriteFile(script, []byte(moveScript), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", in, "-script", script, "-out", out, "-log-level", "error"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	got := raster.FromImage(img)

	// The block moved by (3,1) and was stamped; its old place is background.
	want := raster.NewBitmap(20, 20, raster.White)
	selection.Stamp(want, selection.FloatingState(src.SubBitmap(raster.Rect(2, 2, 8, 6)), raster.Rect(5, 3, 8, 6), raster.Rect(2, 2, 8, 6), false), selection.DefaultOptions())
	if !got.Equal(want) {
		t.Error("output image differs from the expected stamp")
	}
}

func TestRunFailures(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(logging.Nop()) })
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"bad log level", []string{"-log-level", "loud"}, 1},
		{"missing input", []string{"-in", filepath.Join(dir, "absent.png")}, 1},
		{"missing script", []string{"-script", filepath.Join(dir, "absent.toml")}, 1},
		{"bad canvas", []string{"-width", "0"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "pixstorm dev") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
