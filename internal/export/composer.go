package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"runtime"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/sync/errgroup"
)

// ComposeSheet blits every stored frame into its grid cell on a fully
// transparent canvas. Frame i lands at row-major cell (i/cols, i%cols);
// trailing cells stay transparent. With mirror set, each frame is flipped
// about its own vertical axis before placement, so pose direction reverses
// while frame ordering does not. Alpha is copied verbatim.
func ComposeSheet(store *FrameStore, layout Layout, mirror bool) (*image.NRGBA, error) {
	if store.Count() > layout.Rows*layout.Cols {
		return nil, fmt.Errorf("%w: %dx%d holds %d cells, need %d",
			ErrGridTooSmall, layout.Rows, layout.Cols, layout.Rows*layout.Cols, store.Count())
	}

	w, h := layout.CanvasSize(store.width, store.height)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i := 0; i < store.Count(); i++ {
		frame, err := store.Get(i)
		if err != nil {
			return nil, err
		}
		if mirror {
			frame = flipHorizontal(frame)
		}
		col := i % layout.Cols
		row := i / layout.Cols
		cell := image.Rect(col*store.width, row*store.height,
			(col+1)*store.width, (row+1)*store.height)
		draw.Draw(canvas, cell, frame, frame.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

// flipHorizontal mirrors the image about its vertical center axis.
func flipHorizontal(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.PixOffset(b.Min.X+w-1-x, b.Min.Y+y)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+4], img.Pix[src:src+4])
		}
	}
	return out
}

// Encode writes img in the given format. PNG is lossless RGBA; WEBP is
// encoded losslessly with alpha, since frames get resampled downstream and
// compression artifacts would compound.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return &EncodeError{Format: format, Err: err}
		}
		return nil
	case FormatWEBP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return &EncodeError{Format: format, Err: err}
		}
		return nil
	default:
		return &EncodeError{Format: format}
	}
}

// writeEncoded encodes img to path through a temp file and rename, so a
// failed encode never leaves a partial output behind.
func writeEncoded(path string, img image.Image, format Format) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}

// WriteSheet composes the sheet and writes it to the job's sheet path.
func WriteSheet(job Job, store *FrameStore, layout Layout) (string, error) {
	canvas, err := ComposeSheet(store, layout, job.Mirror)
	if err != nil {
		return "", err
	}
	path := job.SheetPath()
	if err := writeEncoded(path, canvas, job.Format); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFrames encodes every stored frame to its own file. Encoding is a
// pure function of an immutable frame, so unlike capture it parallelizes
// safely across workers. On any failure every file written so far is
// removed; the caller never sees a partial set.
func WriteFrames(job Job, store *FrameStore) ([]string, error) {
	paths := make([]string, store.Count())

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < store.Count(); i++ {
		g.Go(func() error {
			frame, err := store.Get(i)
			if err != nil {
				return err
			}
			if job.Mirror {
				frame = flipHorizontal(frame)
			}
			path := job.FramePath(i)
			if err := writeEncoded(path, frame, job.Format); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, p := range paths {
			if p != "" {
				os.Remove(p)
			}
		}
		return nil, err
	}
	return paths, nil
}
