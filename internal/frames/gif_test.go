package frames

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"testing"

	"visual-scout/internal/mediatypes"
)

// writeTestGif writes an animated GIF where each frame is a solid color,
// cycling through the palette so frames are distinguishable.
func writeTestGif(t *testing.T, frameTotal int) string {
	t.Helper()

	palette := color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{0, 0, 255, 255},
	}

	anim := &gif.GIF{Config: image.Config{Width: 8, Height: 8}}
	for i := 0; i < frameTotal; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i % len(palette))
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}

	path := filepath.Join(t.TempDir(), "anim.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create gif: %v", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return path
}

func TestGifSourceSamplesEveryIntervalthIndex(t *testing.T) {
	path := writeTestGif(t, 7)

	src, err := Open(path, mediatypes.KindGif, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	var starts []string
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if rec.Start != rec.End {
			t.Errorf("gif frame window (%s, %s) should be degenerate", rec.Start, rec.End)
		}
		starts = append(starts, rec.Start)
	}

	want := []string{"00:00:00", "00:00:02", "00:00:04", "00:00:06"}
	if len(starts) != len(want) {
		t.Fatalf("got %d candidates %v, want %d", len(starts), starts, len(want))
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("candidate %d = %s, want %s", i, starts[i], want[i])
		}
	}
}

func TestGifSourceSingleFrame(t *testing.T) {
	path := writeTestGif(t, 1)

	src, err := Open(path, mediatypes.KindGif, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rec, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec.Start != "00:00:00" {
		t.Errorf("start = %s, want 00:00:00", rec.Start)
	}
	if _, err := src.Next(); err != io.EOF {
		t.Errorf("second Next = %v, want io.EOF", err)
	}
}

func TestGifSourceCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gif")
	if err := os.WriteFile(path, []byte("GIF89a garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, mediatypes.KindGif, 2)
	if !errors.Is(err, ErrMediaUnreadable) {
		t.Errorf("error = %v, want ErrMediaUnreadable", err)
	}
}

func TestGifSourceMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.gif"), mediatypes.KindGif, 2)
	if !errors.Is(err, ErrMediaUnreadable) {
		t.Errorf("error = %v, want ErrMediaUnreadable", err)
	}
}
