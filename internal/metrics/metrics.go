package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame pipeline metrics
var (
	FramesSampled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_scout_frames_sampled_total",
			Help: "Total candidate frames produced by frame sources",
		},
		[]string{"kind"},
	)

	FramesRetained = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_scout_frames_retained_total",
			Help: "Total candidate frames retained by the novelty filter",
		},
		[]string{"kind"},
	)

	FramesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_scout_frames_discarded_total",
			Help: "Total candidate frames discarded as visually equivalent",
		},
		[]string{"kind"},
	)

	GridsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visual_scout_grids_written_total",
			Help: "Total composite grid images persisted",
		},
	)
)

// Per-file outcome metrics
var (
	FilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visual_scout_files_processed_total",
			Help: "Input files processed, by outcome",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "visual_scout_pipeline_duration_seconds",
			Help:    "Wall time of one per-file extraction pipeline",
			Buckets: prometheus.DefBuckets,
		},
	)

	PoolWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visual_scout_pool_workers",
			Help: "Number of workers in the extraction pool",
		},
	)
)
