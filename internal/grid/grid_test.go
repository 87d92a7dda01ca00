package grid

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"visual-scout/internal/frames"
)

func solidRecord(value uint8, start, end string) *frames.Record {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = value
		img.Pix[i+1] = value
		img.Pix[i+2] = value
		img.Pix[i+3] = 255
	}
	return &frames.Record{Image: img, Start: start, End: end}
}

func makeRecords(n int) []*frames.Record {
	records := make([]*frames.Record, n)
	for i := 0; i < n; i++ {
		records[i] = solidRecord(
			uint8(i*17%256),
			frames.FormatTimestamp(i*2),
			frames.FormatTimestamp(i*2+2),
		)
	}
	return records
}

func TestSide(t *testing.T) {
	tests := []struct {
		n, dim, want int
	}{
		{1, 3, 1},
		{2, 3, 2},
		{4, 3, 2},
		{5, 3, 3},
		{9, 3, 3},
		{14, 3, 3},
		{5, 2, 2},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := Side(tt.n, tt.dim); got != tt.want {
			t.Errorf("Side(%d, %d) = %d, want %d", tt.n, tt.dim, got, tt.want)
		}
	}
}

func TestComposerSealsAtDimSquared(t *testing.T) {
	c := NewComposer(3)

	var sealed []*Batch
	for _, rec := range makeRecords(9) {
		if b := c.Push(rec); b != nil {
			sealed = append(sealed, b)
		}
	}

	if len(sealed) != 1 {
		t.Fatalf("sealed %d batches after 9 pushes, want 1", len(sealed))
	}
	if len(sealed[0].Records) != 9 {
		t.Errorf("batch size = %d, want 9", len(sealed[0].Records))
	}
	if c.Pending() != 0 {
		t.Errorf("pending = %d after seal, want 0", c.Pending())
	}
	if b := c.Flush(); b != nil {
		t.Error("flush after exact seal should return nil")
	}
}

func TestComposerRemainderBuffered(t *testing.T) {
	c := NewComposer(3)

	var sealed int
	for _, rec := range makeRecords(10) {
		if b := c.Push(rec); b != nil {
			sealed++
		}
	}

	if sealed != 1 {
		t.Fatalf("sealed %d full batches, want 1", sealed)
	}
	if c.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", c.Pending())
	}

	remainder := c.Flush()
	if remainder == nil || len(remainder.Records) != 1 {
		t.Fatalf("flush = %v, want 1-frame remainder", remainder)
	}
}

func TestComposerFourteenFramesTwoBatches(t *testing.T) {
	c := NewComposer(3)

	var batches []*Batch
	for _, rec := range makeRecords(14) {
		if b := c.Push(rec); b != nil {
			batches = append(batches, b)
		}
	}
	if b := c.Flush(); b != nil {
		batches = append(batches, b)
	}

	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	if len(batches[0].Records) != 9 || len(batches[1].Records) != 5 {
		t.Errorf("batch sizes = %d, %d; want 9, 5", len(batches[0].Records), len(batches[1].Records))
	}

	// A 5-frame batch still renders on a 3x3 canvas with 4 blank cells.
	rendered := Render(batches[1], 3)
	if rendered.Bounds().Dx() != 30 || rendered.Bounds().Dy() != 30 {
		t.Errorf("second grid = %dx%d, want 30x30", rendered.Bounds().Dx(), rendered.Bounds().Dy())
	}
}

func TestComposerEmptyFlush(t *testing.T) {
	if b := NewComposer(3).Flush(); b != nil {
		t.Error("flushing an empty composer must not seal a batch")
	}
}

func TestRenderShrinksToTightestSquare(t *testing.T) {
	c := NewComposer(3)
	for _, rec := range makeRecords(4) {
		c.Push(rec)
	}
	batch := c.Flush()

	rendered := Render(batch, 3)
	if rendered.Bounds().Dx() != 20 || rendered.Bounds().Dy() != 20 {
		t.Errorf("4-frame grid = %dx%d, want 20x20 (2x2 cells)", rendered.Bounds().Dx(), rendered.Bounds().Dy())
	}
}

func TestRenderBlankCellsStayWhite(t *testing.T) {
	c := NewComposer(3)
	records := makeRecords(5)
	for _, rec := range records {
		c.Push(rec)
	}
	rendered := Render(c.Flush(), 3)

	// Bottom-right cell of the 3x3 canvas is unfilled.
	r, g, b, _ := rendered.At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("blank cell pixel = (%d, %d, %d), want white", r>>8, g>>8, b>>8)
	}
}

func TestRenderRowMajorPlacement(t *testing.T) {
	c := NewComposer(2)
	values := []uint8{10, 60, 110, 160}
	for i, v := range values {
		c.Push(solidRecord(v, frames.FormatTimestamp(i), frames.FormatTimestamp(i+1)))
	}
	rendered := Render(c.Flush(), 2)

	// Sample the center of each cell, row-major.
	positions := []image.Point{{5, 5}, {15, 5}, {5, 15}, {15, 15}}
	for i, pt := range positions {
		r, _, _, _ := rendered.At(pt.X, pt.Y).RGBA()
		if uint8(r>>8) != values[i] {
			t.Errorf("cell %d value = %d, want %d", i, r>>8, values[i])
		}
	}
}

func TestSaveFilenameFromBatchSpan(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "grids")

	c := NewComposer(3)
	for _, rec := range makeRecords(3) {
		c.Push(rec)
	}
	meta, err := Save(c.Flush(), 3, dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	wantName := "grid_0-00-00_0-00-06.jpg"
	if filepath.Base(meta.Path) != wantName {
		t.Errorf("grid name = %s, want %s", filepath.Base(meta.Path), wantName)
	}
	if meta.Start != "0:00:00" || meta.End != "0:00:06" || meta.Frames != 3 {
		t.Errorf("meta = %+v", meta)
	}

	if _, err := os.Stat(meta.Path); err != nil {
		t.Fatalf("grid file missing: %v", err)
	}
	img, err := imaging.Open(meta.Path)
	if err != nil {
		t.Fatalf("saved grid unreadable: %v", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("saved grid width = %d, want 20", img.Bounds().Dx())
	}
}

func TestSanitizeTimestamp(t *testing.T) {
	if got := SanitizeTimestamp("0:00:02"); got != "0-00-02" {
		t.Errorf("SanitizeTimestamp = %q, want 0-00-02", got)
	}
}

func TestBatchSpanAccessors(t *testing.T) {
	b := &Batch{Records: makeRecords(3)}
	if b.Start() != "0:00:00" {
		t.Errorf("Start() = %s", b.Start())
	}
	if b.End() != "0:00:06" {
		t.Errorf("End() = %s", b.End())
	}
}
