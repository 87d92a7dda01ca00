package frames

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// gifSource steps through the logical frames of an animated GIF. GIFs
// have no efficient random seek, so every logical index is visited but
// only every interval-th index becomes a candidate frame. Frames are
// composited onto a running canvas so partial-update GIFs decode to
// full images.
type gifSource struct {
	frames   []*image.Paletted
	canvas   *image.RGBA
	interval int
	index    int
}

func newGifSource(path string, interval int) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUnreadable, err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode gif %s: %v", ErrMediaUnreadable, path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: gif %s has no frames", ErrMediaUnreadable, path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	return &gifSource{
		frames:   g.Image,
		canvas:   image.NewRGBA(bounds),
		interval: interval,
	}, nil
}

func (g *gifSource) Next() (*Record, error) {
	for g.index < len(g.frames) {
		idx := g.index
		g.index++

		frame := g.frames[idx]
		draw.Draw(g.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		if idx%g.interval != 0 {
			continue
		}

		// Snapshot the canvas; later frames keep drawing over it.
		snapshot := image.NewRGBA(g.canvas.Bounds())
		copy(snapshot.Pix, g.canvas.Pix)

		start, end := FormatGifTimestamp(idx)
		return &Record{Image: snapshot, Start: start, End: end}, nil
	}
	return nil, io.EOF
}

func (g *gifSource) Close() error { return nil }
