package grid

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"visual-scout/internal/logging"
)

// Meta carries enough information for a downstream labeling collaborator
// to associate a grid image with a time range in the original media.
type Meta struct {
	Path   string `json:"path"`
	Start  string `json:"start_timestamp"`
	End    string `json:"end_timestamp"`
	Frames int    `json:"num_images"`
}

// Side returns the rendered grid side for a batch of n frames under a
// maximum dimension: the tightest square that fits all members without
// exceeding the configured maximum.
func Side(n, dim int) int {
	if n <= 0 {
		return 0
	}
	raw := int(math.Ceil(math.Sqrt(float64(n))))
	return min(dim, raw)
}

// Render tiles a sealed batch into one composite image. Cells are sized
// to the first frame's dimensions, members are placed row-major from
// the top-left, and unfilled cells stay the white background.
func Render(b *Batch, dim int) *image.NRGBA {
	first := b.Records[0].Image.Bounds()
	cellW, cellH := first.Dx(), first.Dy()
	side := Side(len(b.Records), dim)

	canvas := imaging.New(side*cellW, side*cellH, color.White)
	for idx, rec := range b.Records {
		row, col := idx/side, idx%side
		canvas = imaging.Paste(canvas, rec.Image, image.Pt(col*cellW, row*cellH))
	}
	return canvas
}

// Save renders a batch and writes it as grid_<start>_<end>.jpg in dir,
// creating the directory if needed. The filename is derived from the
// first member's start and last member's end timestamps, making grid
// identity deterministic.
func Save(b *Batch, dim int, dir string) (Meta, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Meta{}, fmt.Errorf("create grid dir: %w", err)
	}

	name := fmt.Sprintf("grid_%s_%s.jpg", SanitizeTimestamp(b.Start()), SanitizeTimestamp(b.End()))
	path := filepath.Join(dir, name)

	if err := imaging.Save(Render(b, dim), path, imaging.JPEGQuality(90)); err != nil {
		return Meta{}, fmt.Errorf("save grid %s: %w", path, err)
	}
	logging.Debug("saved grid %s (%d frames)", path, len(b.Records))

	return Meta{
		Path:   path,
		Start:  b.Start(),
		End:    b.End(),
		Frames: len(b.Records),
	}, nil
}

// SanitizeTimestamp swaps colons for dashes so timestamps are safe in
// filenames on every platform.
func SanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}
