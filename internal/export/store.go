package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"syscall"

	"github.com/shirou/gopsutil/v3/disk"
)

// minDiskHeadroom is the free space the store insists on keeping after each
// frame write. Running the disk to zero would take the whole host down with
// the job.
const minDiskHeadroom = 64 << 20 // 64 MiB

// FrameStore holds captured frames as raw RGBA dumps in a private per-job
// temp directory. Frames are keyed by their 0-based output index; the
// directory name is unique per job so overlapping cleanup of sequential
// jobs cannot collide.
type FrameStore struct {
	dir    string
	width  int
	height int
	count  int

	// freeBytes reports the free space on the volume holding path.
	// Swappable in tests.
	freeBytes func(path string) (uint64, error)
}

// NewFrameStore creates the per-job temp directory. baseDir may be empty to
// use the system temp dir.
func NewFrameStore(baseDir, jobName string, width, height int) (*FrameStore, error) {
	dir, err := os.MkdirTemp(baseDir, "spriteforge_"+sanitizeName(jobName)+"_")
	if err != nil {
		return nil, fmt.Errorf("creating frame store: %w", err)
	}
	return &FrameStore{
		dir:    dir,
		width:  width,
		height: height,
		freeBytes: func(path string) (uint64, error) {
			usage, err := disk.Usage(path)
			if err != nil {
				return 0, err
			}
			return usage.Free, nil
		},
	}, nil
}

// Dir returns the store's directory.
func (s *FrameStore) Dir() string { return s.dir }

// Count returns the number of frames written so far.
func (s *FrameStore) Count() int { return s.count }

func (s *FrameStore) framePath(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%06d.rgba", index))
}

// Put writes the frame for the given output index. Indices must arrive
// contiguously from zero. Fails with ErrStorageExhausted when the volume
// has no headroom left for the frame.
func (s *FrameStore) Put(index int, img *image.NRGBA) error {
	if index != s.count {
		return fmt.Errorf("frame index %d out of order, want %d", index, s.count)
	}
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame %d is %dx%d, store expects %dx%d",
			index, b.Dx(), b.Dy(), s.width, s.height)
	}

	need := uint64(s.width*s.height*4) + minDiskHeadroom
	if free, err := s.freeBytes(s.dir); err == nil && free < need {
		return fmt.Errorf("%w: %d bytes free on %s, need %d",
			ErrStorageExhausted, free, s.dir, need)
	}

	if err := os.WriteFile(s.framePath(index), rawRGBA(img), 0644); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("%w: %v", ErrStorageExhausted, err)
		}
		return fmt.Errorf("writing frame %d: %w", index, err)
	}
	s.count++
	return nil
}

// Get reads back the frame for the given index.
func (s *FrameStore) Get(index int) (*image.NRGBA, error) {
	if index < 0 || index >= s.count {
		return nil, fmt.Errorf("frame index %d out of range [0, %d)", index, s.count)
	}
	data, err := os.ReadFile(s.framePath(index))
	if err != nil {
		return nil, fmt.Errorf("reading frame %d: %w", index, err)
	}
	want := s.width * s.height * 4
	if len(data) != want {
		return nil, fmt.Errorf("frame %d is %d bytes, want %d", index, len(data), want)
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, data)
	return img, nil
}

// Remove deletes the store directory and everything in it.
func (s *FrameStore) Remove() error {
	return os.RemoveAll(s.dir)
}

// rawRGBA returns the image's pixel data as a tightly packed RGBA slice.
func rawRGBA(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w*4 && b.Min.X == 0 && b.Min.Y == 0 {
		return img.Pix[:w*h*4]
	}
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*w*4:(y+1)*w*4], img.Pix[src:src+w*4])
	}
	return out
}
