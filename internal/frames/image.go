package frames

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageSource yields exactly one frame for a static image input.
type imageSource struct {
	record *Record
}

func newImageSource(path string) (Source, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: open image %s: %v", ErrMediaUnreadable, path, err)
	}
	return &imageSource{
		record: &Record{Image: img, Start: "00:00:00", End: "00:00:00"},
	}, nil
}

func (s *imageSource) Next() (*Record, error) {
	if s.record == nil {
		return nil, io.EOF
	}
	rec := s.record
	s.record = nil
	return rec, nil
}

func (s *imageSource) Close() error { return nil }
