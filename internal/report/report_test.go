package report

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

var day = time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)

func writePNG(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 20), B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func testPanel(t *testing.T) *taskpanel.Panel {
	t.Helper()
	p, err := taskpanel.New([]taskpanel.SlotConfig{
		{Folder: "taak3", Label: "Taak 3", Annotation: taskpanel.AnnotationText, Files: []string{"Splitsen tot 6.png"}},
		{Folder: "leesboeken", Label: "Leesboek", Annotation: taskpanel.AnnotationPages, Files: []string{"Leesboekje 1.png"}},
	}, nil)
	if err != nil {
		t.Fatalf("taskpanel.New: %v", err)
	}
	return p
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "taak3", "Splitsen tot 6.png"))

	p := testPanel(t)
	if err := p.SelectionChanged(1, "taak3/Splitsen tot 6.png"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := p.AnnotationChanged(1, taskpanel.Annotation{Text: "Eerst de rij van één"}); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	// No file on disk for this one; it is printed without a picture.
	if err := p.SelectionChanged(2, "leesboeken/Leesboekje 1.png"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := p.AnnotationChanged(2, taskpanel.Annotation{PageFrom: 4, PageTo: 9}); err != nil {
		t.Fatalf("annotate: %v", err)
	}

	ended := day.Add(10 * time.Minute)
	var buf bytes.Buffer
	err := Generate(context.Background(), &buf, Input{
		Date:     day,
		Tasks:    p.Views(),
		AssetDir: dir,
		Sessions: []models.Session{{ID: "a", RequestedMinutes: 10, StartedAt: day, EndedAt: &ended, Outcome: models.OutcomeFinished}},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestGenerateWithoutTasks(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(context.Background(), &buf, Input{Date: day}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output")
	}
}

func TestGenerateCancelled(t *testing.T) {
	p := testPanel(t)
	if err := p.SelectionChanged(1, "taak3/Splitsen tot 6.png"); err != nil {
		t.Fatalf("select: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := Generate(ctx, &buf, Input{Date: day, Tasks: p.Views()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := WriteFile(context.Background(), dir, Input{Date: day})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "taken_2024-09-02.pdf" {
		t.Fatalf("unexpected file name %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestSessionLine(t *testing.T) {
	cases := []struct {
		s    models.Session
		want string
	}{
		{models.Session{RequestedMinutes: 10, StartedAt: day, Outcome: models.OutcomeFinished}, "08:00  10 min  afgelopen"},
		{models.Session{RequestedMinutes: 5, StartedAt: day, Outcome: models.OutcomeStopped, RemainingSeconds: 125}, "08:00  5 min  gestopt, 2:05 over"},
		{models.Session{RequestedMinutes: 1, StartedAt: day, Outcome: models.OutcomeRunning}, "08:00  1 min  loopt"},
	}
	for _, tc := range cases {
		if got := SessionLine(tc.s); got != tc.want {
			t.Fatalf("SessionLine = %q, want %q", got, tc.want)
		}
	}
}
