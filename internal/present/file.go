package present

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// FileSurface writes every blitted image to Path, replacing the previous
// file. The encoding follows the extension: .webp (lossless) or .png.
type FileSurface struct {
	Path          string
	Width, Height int
}

func (f *FileSurface) Size() (int, int) { return f.Width, f.Height }

func (f *FileSurface) Blit(img Image, w, h int) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("present: mkdir for %s: %w", f.Path, err)
	}
	return WriteImage(f.Path, img, w, h)
}

// WriteImage encodes img to path, choosing the format from the extension.
// The file is written to a temporary name first and renamed into place.
func WriteImage(path string, img Image, w, h int) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" && ext != ".png" {
		return fmt.Errorf("present: unsupported image format %q", ext)
	}

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("present: create %s: %w", tmp, err)
	}

	src := img.NRGBA(w, h)
	if ext == ".webp" {
		err = nativewebp.Encode(out, src, nil)
	} else {
		err = png.Encode(out, src)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("present: encode %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("present: rename %s: %w", path, err)
	}
	return nil
}

// WriteAnimation encodes same-sized images as a looping animated WebP, each
// shown for delay.
func WriteAnimation(path string, frames []Image, w, h int, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("present: animation %s has no frames", path)
	}
	ani := &nativewebp.Animation{
		Images:    make([]image.Image, len(frames)),
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i, f := range frames {
		if len(f) != w*h*BytesPerPixel {
			return fmt.Errorf("present: animation frame %d: %w", i, ErrDimensionMismatch)
		}
		ani.Images[i] = f.NRGBA(w, h)
		ani.Durations[i] = uint(delay.Milliseconds())
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("present: create %s: %w", path, err)
	}
	err = nativewebp.EncodeAll(out, ani, nil)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("present: encode %s: %w", path, err)
	}
	return nil
}
