package export

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"sync"
	"testing"

	"github.com/Faultbox/spriteforge/internal/preview"
	"github.com/Faultbox/spriteforge/internal/scene"
	"github.com/Faultbox/spriteforge/pkg/math"
)

func newTestExporter(t *testing.T, anim scene.Animator, rend scene.Renderer) *Exporter {
	t.Helper()
	e := New(anim, rend)
	e.TempDir = t.TempDir()
	return e
}

func outputEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%q): %v", dir, err)
	}
	return entries
}

func TestExportSheet(t *testing.T) {
	scn := preview.NewScene(10)
	e := newTestExporter(t, scn, scn)
	job := validJob(t)

	result, err := e.Export(context.Background(), job)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.FrameCount != 10 {
		t.Errorf("FrameCount = %d, want 10", result.FrameCount)
	}
	if result.Layout.Rows != 3 || result.Layout.Cols != 4 {
		t.Errorf("layout = %dx%d, want 3x4", result.Layout.Rows, result.Layout.Cols)
	}
	if len(result.Paths) != 1 {
		t.Fatalf("got %d output paths, want 1", len(result.Paths))
	}

	f, err := os.Open(result.Paths[0])
	if err != nil {
		t.Fatalf("opening sheet: %v", err)
	}
	defer f.Close()
	sheet, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding sheet: %v", err)
	}
	if sheet.Bounds().Dx() != 4*128 || sheet.Bounds().Dy() != 3*128 {
		t.Errorf("sheet is %v, want 512x384", sheet.Bounds())
	}

	// The per-job frame directory is gone once the job finishes.
	if entries := outputEntries(t, e.TempDir); len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %d entries remain", len(entries))
	}
}

func TestExportFramesMode(t *testing.T) {
	scn := preview.NewScene(10)
	e := newTestExporter(t, scn, scn)
	job := validJob(t)
	job.Mode = ModeFrames

	result, err := e.Export(context.Background(), job)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(result.Paths) != 10 {
		t.Fatalf("got %d frame files, want 10", len(result.Paths))
	}
	for _, p := range result.Paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("frame file %q missing: %v", p, err)
		}
	}
}

func TestExportRestoresSceneTime(t *testing.T) {
	scn := preview.NewScene(10)
	scn.SetTime(5)
	e := newTestExporter(t, scn, scn)

	if _, err := e.Export(context.Background(), validJob(t)); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if scn.Time() != 5 {
		t.Errorf("scene time = %d after export, want 5 restored", scn.Time())
	}
}

func TestExportNoGeometry(t *testing.T) {
	anim := &fakeAnimator{
		bounds: func(int) (math.Box3, bool) { return math.Box3{}, false },
	}
	rend := &fakeRenderer{}
	e := newTestExporter(t, anim, rend)
	job := validJob(t)

	_, err := e.Export(context.Background(), job)
	if !errors.Is(err, ErrNoAnimationData) {
		t.Fatalf("got %v, want ErrNoAnimationData", err)
	}
	if rend.renderCalls != 0 {
		t.Errorf("renderer called %d times, want 0: sampling must fail before capture", rend.renderCalls)
	}
	if entries := outputEntries(t, job.OutputDir); len(entries) != 0 {
		t.Errorf("output dir has %d entries after failed job, want 0", len(entries))
	}
}

func TestExportRenderFailure(t *testing.T) {
	anim := &fakeAnimator{}
	rend := &fakeRenderer{failAtCall: 4}
	e := newTestExporter(t, anim, rend)
	job := validJob(t)

	_, err := e.Export(context.Background(), job)
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("got %v, want *RenderError", err)
	}
	if entries := outputEntries(t, job.OutputDir); len(entries) != 0 {
		t.Errorf("output dir has %d entries after render failure, want 0", len(entries))
	}
	if entries := outputEntries(t, e.TempDir); len(entries) != 0 {
		t.Errorf("temp dir has %d entries after render failure, want 0", len(entries))
	}
}

func TestExportCancellation(t *testing.T) {
	scn := preview.NewScene(10)
	e := newTestExporter(t, scn, scn)
	job := validJob(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Export(ctx, job)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if entries := outputEntries(t, job.OutputDir); len(entries) != 0 {
		t.Errorf("output dir has %d entries after cancelled job, want 0", len(entries))
	}
}

func TestExportInvalidJobHasNoSideEffects(t *testing.T) {
	scn := preview.NewScene(10)
	scn.SetTime(3)
	e := newTestExporter(t, scn, scn)
	job := validJob(t)
	job.Padding = 5

	if _, err := e.Export(context.Background(), job); !errors.Is(err, ErrInvalidPadding) {
		t.Fatalf("got %v, want ErrInvalidPadding", err)
	}
	if scn.Time() != 3 {
		t.Errorf("scene time = %d after rejected job, want 3 untouched", scn.Time())
	}
	if entries := outputEntries(t, e.TempDir); len(entries) != 0 {
		t.Errorf("temp dir has %d entries after rejected job, want 0", len(entries))
	}
}

// stashRenderer records whether the exporter stashed and restored the
// host camera around the job.
type stashRenderer struct {
	fakeRenderer
	stashed  bool
	restored bool
}

func (r *stashRenderer) StashCamera() (restore func()) {
	r.stashed = true
	return func() { r.restored = true }
}

func TestExportRestoresHostCamera(t *testing.T) {
	anim := &fakeAnimator{}
	rend := &stashRenderer{}
	e := newTestExporter(t, anim, rend)

	if _, err := e.Export(context.Background(), validJob(t)); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !rend.stashed {
		t.Error("exporter did not stash the host camera before capture")
	}
	if !rend.restored {
		t.Error("exporter did not restore the host camera during cleanup")
	}
}

func TestExportRestoresHostCameraOnFailure(t *testing.T) {
	anim := &fakeAnimator{}
	rend := &stashRenderer{fakeRenderer: fakeRenderer{failAtCall: 2}}
	e := newTestExporter(t, anim, rend)

	if _, err := e.Export(context.Background(), validJob(t)); err == nil {
		t.Fatal("export should fail when the renderer fails")
	}
	if !rend.restored {
		t.Error("camera must be restored on the failure path too")
	}
}

// blockingRenderer parks the first Render call until released, so tests can
// observe a job mid-flight.
type blockingRenderer struct {
	fakeRenderer
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingRenderer() *blockingRenderer {
	return &blockingRenderer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingRenderer) Render(width, height int) (*image.NRGBA, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.fakeRenderer.Render(width, height)
}

func TestExportSingleFlight(t *testing.T) {
	anim := &fakeAnimator{}
	rend := newBlockingRenderer()
	e := newTestExporter(t, anim, rend)
	job := validJob(t)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), job)
		done <- err
	}()
	<-rend.started

	if _, err := e.Export(context.Background(), job); !errors.Is(err, ErrJobAlreadyRunning) {
		t.Errorf("concurrent export: got %v, want ErrJobAlreadyRunning", err)
	}

	close(rend.release)
	if err := <-done; err != nil {
		t.Fatalf("first export failed: %v", err)
	}

	// The slot frees up once the first job finishes.
	if _, err := e.Export(context.Background(), job); err != nil {
		t.Errorf("sequential export after completion failed: %v", err)
	}
}
