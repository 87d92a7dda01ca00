package frames

import (
	"errors"
	"fmt"
	"image"

	"visual-scout/internal/mediatypes"
)

// ErrMediaUnreadable is returned when a decoder cannot open or parse a
// media file (corrupt, zero-length, truncated). Callers skip the file
// and continue with the rest of the batch.
var ErrMediaUnreadable = errors.New("media unreadable")

// DefaultInterval is the nominal spacing in seconds between candidate
// frames for video and GIF sources.
const DefaultInterval = 2

// Record is a single sampled frame plus the nominal time window it
// covers. Records are never mutated after creation; ownership passes
// from the source to the pipeline stage that consumes them.
type Record struct {
	Image image.Image
	Start string // H:MM:SS offset of the frame
	End   string // H:MM:SS end of the sampling window
}

// Source produces an ordered, lazy sequence of sampled frames from one
// media file. Next returns io.EOF when the stream is exhausted.
type Source interface {
	Next() (*Record, error)
	Close() error
}

// Open returns the frame source variant for the given media kind.
// A file that cannot be opened or decoded yields ErrMediaUnreadable.
func Open(path string, kind mediatypes.Kind, interval int) (Source, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	switch kind {
	case mediatypes.KindVideo:
		return newVideoSource(path, interval)
	case mediatypes.KindGif:
		return newGifSource(path, interval)
	case mediatypes.KindImage:
		return newImageSource(path)
	}
	return nil, fmt.Errorf("no frame source for kind %q", kind)
}

// FormatTimestamp renders a whole-second offset as H:MM:SS. The hour
// field is not zero-padded, matching the timestamps embedded in frame
// and grid filenames.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatGifTimestamp renders a GIF logical frame index as a timestamp
// pair. GIF frames carry no meaningful duration window, so start and
// end are identical.
func FormatGifTimestamp(index int) (string, string) {
	ts := fmt.Sprintf("00:00:%02d", index)
	return ts, ts
}
