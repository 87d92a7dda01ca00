package frames

import (
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"visual-scout/internal/mediatypes"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for i := range img.Pix {
		img.Pix[i] = 0xAA
	}

	path := filepath.Join(t.TempDir(), "still.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestImageSourceYieldsExactlyOneFrame(t *testing.T) {
	src, err := Open(writeTestPNG(t), mediatypes.KindImage, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	rec, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec.Start != "00:00:00" || rec.End != "00:00:00" {
		t.Errorf("timestamps = (%s, %s), want (00:00:00, 00:00:00)", rec.Start, rec.End)
	}
	if rec.Image == nil {
		t.Fatal("nil image")
	}

	if _, err := src.Next(); err != io.EOF {
		t.Errorf("second Next = %v, want io.EOF", err)
	}
}

func TestImageSourceUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, mediatypes.KindImage, 2)
	if !errors.Is(err, ErrMediaUnreadable) {
		t.Errorf("error = %v, want ErrMediaUnreadable", err)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	if _, err := Open("x", mediatypes.Kind("bogus"), 2); err == nil {
		t.Error("Open with unknown kind should fail")
	}
}

func TestProbeDurationParses(t *testing.T) {
	run := func(name string, args ...string) ([]byte, error) {
		return []byte("12.345000\n"), nil
	}
	d, err := probeDuration(run, "clip.mp4")
	if err != nil {
		t.Fatalf("probeDuration: %v", err)
	}
	if d != 12.345 {
		t.Errorf("duration = %v, want 12.345", d)
	}
}

func TestProbeDurationGarbage(t *testing.T) {
	run := func(name string, args ...string) ([]byte, error) {
		return []byte("N/A\n"), nil
	}
	if _, err := probeDuration(run, "clip.mp4"); err == nil {
		t.Error("expected parse error")
	}
}
