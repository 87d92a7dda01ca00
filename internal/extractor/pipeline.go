package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"visual-scout/internal/frames"
	"visual-scout/internal/grid"
	"visual-scout/internal/logging"
	"visual-scout/internal/mediatypes"
	"visual-scout/internal/metrics"
	"visual-scout/internal/similarity"
)

// ErrEmptyResult marks a pipeline that retained zero frames. Its
// partially created output directories are removed so empty directories
// do not litter the output tree.
var ErrEmptyResult = errors.New("no frames retained")

// Status classifies the result of one per-file pipeline.
type Status string

const (
	StatusOK          Status = "ok"
	StatusNotFound    Status = "not_found"
	StatusUnsupported Status = "unsupported"
	StatusUnreadable  Status = "unreadable"
	StatusEmpty       Status = "empty"
)

// Outcome is the per-file result reported by the orchestrator.
type Outcome struct {
	Path      string
	Status    Status
	Err       error
	Retained  int
	Discarded int
	Grids     []grid.Meta
}

// pipeline runs one media file end to end: classify, sample, filter,
// compose, persist. It owns its retention state and frame buffer; no
// state is shared with sibling pipelines.
func (e *Extractor) pipeline(path string) Outcome {
	started := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(started).Seconds())
	}()

	if _, err := os.Stat(path); err != nil {
		logging.Warn("input not found: %s", path)
		return Outcome{Path: path, Status: StatusNotFound, Err: err}
	}

	kind, err := mediatypes.Classify(path)
	if err != nil {
		logging.Warn("skipping %s: %v", path, err)
		return Outcome{Path: path, Status: StatusUnsupported, Err: err}
	}

	src, err := e.open(path, kind, e.interval)
	if err != nil {
		logging.Warn("skipping %s: %v", path, err)
		return Outcome{Path: path, Status: StatusUnreadable, Err: err}
	}
	defer src.Close()

	base := mediaBasename(path)
	framesDir := filepath.Join(e.outputDir, "output_frames", base+"__frames")
	gridsDir := filepath.Join(e.outputDir, "output_grids", base+"__frames__grids")

	// Concurrent pipelines may race on the shared parents; MkdirAll is
	// idempotent, so no locking is needed.
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return Outcome{Path: path, Status: StatusUnreadable, Err: fmt.Errorf("create frames dir: %w", err)}
	}

	outcome := Outcome{Path: path, Status: StatusOK}
	composer := grid.NewComposer(e.gridDim)
	var retention similarity.Retention

	for {
		rec, nextErr := src.Next()
		if nextErr != nil {
			break
		}
		metrics.FramesSampled.WithLabelValues(string(kind)).Inc()

		if similarity.Decide(&retention, rec.Image, e.threshold, e.staticSampling) == similarity.Discard {
			outcome.Discarded++
			metrics.FramesDiscarded.WithLabelValues(string(kind)).Inc()
			continue
		}
		outcome.Retained++
		metrics.FramesRetained.WithLabelValues(string(kind)).Inc()

		e.persistFrame(framesDir, rec)

		if batch := composer.Push(rec); batch != nil {
			e.persistGrid(&outcome, batch, gridsDir, path)
		}
	}

	if batch := composer.Flush(); batch != nil {
		e.persistGrid(&outcome, batch, gridsDir, path)
	}

	if outcome.Retained == 0 {
		removeIfEmpty(framesDir)
		removeIfEmpty(gridsDir)
		outcome.Status = StatusEmpty
		outcome.Err = ErrEmptyResult
		logging.Warn("no frames retained from %s, removed empty output directories", path)
		return outcome
	}

	logging.Info("%s: retained %d frames (%d discarded), wrote %d grids",
		path, outcome.Retained, outcome.Discarded, len(outcome.Grids))
	return outcome
}

// persistFrame writes one retained frame. Write failures warn and
// continue; the frame still joins its grid batch.
func (e *Extractor) persistFrame(dir string, rec *frames.Record) {
	name := fmt.Sprintf("frame_%s_%s.jpg", grid.SanitizeTimestamp(rec.Start), grid.SanitizeTimestamp(rec.End))
	path := filepath.Join(dir, name)
	if err := imaging.Save(rec.Image, path, imaging.JPEGQuality(90)); err != nil {
		logging.Warn("could not save frame %s: %v", path, err)
	}
}

// persistGrid renders and writes a sealed batch, then records it in the
// grid index when one is configured.
func (e *Extractor) persistGrid(outcome *Outcome, batch *grid.Batch, dir, source string) {
	meta, err := grid.Save(batch, e.gridDim, dir)
	if err != nil {
		logging.Warn("could not save grid for %s: %v", source, err)
		return
	}
	metrics.GridsWritten.Inc()
	outcome.Grids = append(outcome.Grids, meta)

	if e.store != nil {
		if err := e.store.RecordGrid(context.Background(), source, meta); err != nil {
			logging.Warn("could not index grid %s: %v", meta.Path, err)
		}
	}
}

// mediaBasename strips the directory and extension from a media path.
func mediaBasename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// removeIfEmpty deletes dir when it exists and holds no entries.
func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		logging.Warn("could not remove empty directory %s: %v", dir, err)
	}
}
