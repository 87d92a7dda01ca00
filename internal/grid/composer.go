package grid

import (
	"visual-scout/internal/frames"
)

// Batch is a sealed, ordered run of retained frames destined for one
// composite grid image. Batches never span two media files.
type Batch struct {
	Records []*frames.Record
}

// Start returns the timestamp of the batch's first member.
func (b *Batch) Start() string { return b.Records[0].Start }

// End returns the end timestamp of the batch's last member.
func (b *Batch) End() string { return b.Records[len(b.Records)-1].End }

// Composer accumulates retained frames into bounded batches. Sealing at
// dim² members bounds peak memory to one batch rather than the whole
// media file.
type Composer struct {
	dim    int
	buffer []*frames.Record
}

// NewComposer returns a composer for grids of at most dim×dim cells.
func NewComposer(dim int) *Composer {
	return &Composer{dim: dim}
}

// Dim returns the configured maximum grid dimension.
func (c *Composer) Dim() int { return c.dim }

// Push appends a retained frame to the current batch. When the buffer
// reaches dim² members it is sealed and returned; otherwise nil.
func (c *Composer) Push(rec *frames.Record) *Batch {
	c.buffer = append(c.buffer, rec)
	if len(c.buffer) < c.dim*c.dim {
		return nil
	}
	return c.seal()
}

// Flush seals the trailing remainder at end of stream. Returns nil when
// the buffer is empty; a zero-member batch is never produced.
func (c *Composer) Flush() *Batch {
	if len(c.buffer) == 0 {
		return nil
	}
	return c.seal()
}

// Pending returns the number of frames buffered but not yet sealed.
func (c *Composer) Pending() int { return len(c.buffer) }

func (c *Composer) seal() *Batch {
	batch := &Batch{Records: c.buffer}
	c.buffer = nil
	return batch
}
