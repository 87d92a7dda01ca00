package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"visual-scout/internal/config"
	"visual-scout/internal/frames"
	"visual-scout/internal/logging"
	"visual-scout/internal/mediatypes"
	"visual-scout/internal/metrics"
	"visual-scout/internal/store"
	"visual-scout/internal/workers"
)

// Extractor fans one independent pipeline per input media file across a
// bounded worker pool. Pipelines share no mutable state, so a file's
// failure never affects its siblings.
type Extractor struct {
	outputDir      string
	gridDim        int
	threshold      float64
	staticSampling bool
	interval       int
	poolSize       int
	store          *store.Store

	// open is the frame source constructor; swapped in tests.
	open func(path string, kind mediatypes.Kind, interval int) (frames.Source, error)
}

// New builds an Extractor from validated configuration. The store is
// optional; pass nil to skip grid indexing.
func New(cfg *config.Config, st *store.Store) *Extractor {
	return &Extractor{
		outputDir:      cfg.OutputDir,
		gridDim:        cfg.GridDim,
		threshold:      cfg.Threshold,
		staticSampling: cfg.StaticSampling,
		interval:       cfg.Interval,
		poolSize:       workers.ForPipelines(cfg.Workers),
		store:          st,
		open:           frames.Open,
	}
}

// Report aggregates the per-file outcomes of one run.
type Report struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Succeeded counts pipelines that produced at least one grid.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusOK {
			n++
		}
	}
	return n
}

// Failed counts pipelines that did not complete normally.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Run processes every input file to completion. There is no
// cancellation: once dispatched, a pipeline runs until it finishes or
// fails. The report preserves input order.
func (e *Extractor) Run(paths []string) *Report {
	started := time.Now()

	poolSize := e.poolSize
	if poolSize > len(paths) {
		poolSize = len(paths)
	}
	if poolSize < 1 {
		poolSize = 1
	}
	metrics.PoolWorkers.Set(float64(poolSize))
	logging.Info("Extracting %d files with %d workers", len(paths), poolSize)

	jobs := make(chan int)
	outcomes := make([]Outcome, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < poolSize; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.pipeline(paths[i])
				metrics.FilesProcessed.WithLabelValues(string(outcomes[i].Status)).Inc()
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &Report{Outcomes: outcomes, Duration: time.Since(started)}
	logging.Info("Extraction complete: %d ok, %d skipped or failed in %v",
		report.Succeeded(), report.Failed(), report.Duration)
	return report
}

// ListMediaFiles returns the supported media files directly inside dir,
// sorted by name. Files with unrecognized extensions are skipped with a
// debug note; a missing directory is an error.
func ListMediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !mediatypes.IsMediaFile(entry.Name()) {
			logging.Debug("ignoring non-media file %s", entry.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no media files found in %s", dir)
	}
	return paths, nil
}
