package cost

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"visual-scout/internal/frames"
	"visual-scout/internal/logging"
	"visual-scout/internal/mediatypes"
)

// PricePerImage maps model names to the per-image cost in USD charged
// by the labeling API.
var PricePerImage = map[string]float64{
	"gpt-4o":      0.005,
	"gpt-4o-mini": 0.0003,
}

// Models returns the priced model names in sorted order.
func Models() []string {
	names := make([]string, 0, len(PricePerImage))
	for name := range PricePerImage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Estimate summarizes the projected labeling workload for a directory
// of media files.
type Estimate struct {
	VideoFiles   int
	ImageFiles   int
	TotalSeconds float64
	Frames       float64
	Grids        float64
	BilledImages int
	Cost         float64
}

// Estimator projects how many API-billed images a directory of media
// would produce under the given sampling and grid settings.
type Estimator struct {
	Interval int
	GridDim  int
	Model    string

	probe func(path string) (float64, error)
}

// NewEstimator builds an estimator. An unknown model name is rejected
// so the caller sees the problem before scanning any files.
func NewEstimator(interval, gridDim int, model string) (*Estimator, error) {
	if _, ok := PricePerImage[model]; !ok {
		return nil, fmt.Errorf("no pricing for model %q, known models: %v", model, Models())
	}
	if interval <= 0 {
		return nil, fmt.Errorf("sampling interval must be positive, got %d", interval)
	}
	if gridDim <= 0 {
		return nil, fmt.Errorf("grid dimension must be positive, got %d", gridDim)
	}
	return &Estimator{
		Interval: interval,
		GridDim:  gridDim,
		Model:    model,
		probe:    frames.ProbeDuration,
	}, nil
}

// EstimateDir scans dir non-recursively and projects the labeling cost
// for every supported media file found. A file whose duration cannot
// be probed counts as zero seconds rather than aborting the estimate.
func (e *Estimator) EstimateDir(dir string) (*Estimate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	est := &Estimate{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		kind, err := mediatypes.Classify(path)
		if err != nil {
			continue
		}
		switch kind {
		case mediatypes.KindVideo, mediatypes.KindGif:
			est.VideoFiles++
			seconds, err := e.probe(path)
			if err != nil {
				logging.Warn("could not probe %s, counting as zero seconds: %v", entry.Name(), err)
				continue
			}
			est.TotalSeconds += seconds
		case mediatypes.KindImage:
			est.ImageFiles++
		}
	}

	if est.VideoFiles == 0 && est.ImageFiles == 0 {
		return nil, fmt.Errorf("no supported media files found in %s", dir)
	}

	est.Frames = est.TotalSeconds / float64(e.Interval)
	est.Grids = est.Frames / float64(e.GridDim*e.GridDim)
	billed := est.Frames + float64(est.ImageFiles)
	est.BilledImages = int(billed)
	est.Cost = billed * PricePerImage[e.Model]
	return est, nil
}

// String renders the estimate the way the CLI prints it.
func (est *Estimate) String() string {
	return fmt.Sprintf(
		"Total video duration: %.2f seconds\n"+
			"Standalone images in directory: %d\n"+
			"Estimated total images processed: %d\n"+
			"Estimated processing cost: $%.6f",
		est.TotalSeconds, est.ImageFiles, est.BilledImages, est.Cost)
}
