package similarity

import (
	"fmt"
	"image"
	"sort"

	"visual-scout/internal/logging"
)

// Thresholds maps named similarity profiles to SSIM cutoffs. A candidate
// scoring at or above the cutoff against the last retained frame is
// discarded, so a higher cutoff discards less.
var Thresholds = map[string]float64{
	"strict":  0.95,
	"default": 0.90,
	"loose":   0.80,
}

// Threshold resolves a profile name to its SSIM cutoff. Unknown names
// are a configuration error, fatal to the whole run.
func Threshold(profile string) (float64, error) {
	t, ok := Thresholds[profile]
	if !ok {
		return 0, fmt.Errorf("unknown similarity profile %q (have %v)", profile, ProfileNames())
	}
	return t, nil
}

// ProfileNames returns the known profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Thresholds))
	for name := range Thresholds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Retention holds the luminance buffer of the most recently retained
// frame for one pipeline run. The zero value holds nothing; one
// instance exists per file pipeline and is never shared.
type Retention struct {
	prev *luminance
}

// Decision is the outcome of a novelty check.
type Decision int

const (
	// Keep retains the candidate frame for grid composition.
	Keep Decision = iota
	// Discard drops the candidate as visually equivalent to the last
	// retained frame.
	Discard
)

// Decide gates a candidate frame against the last retained frame.
//
// The comparison reference is always the last retained frame, not the
// last seen one: a slow drift across many near-duplicates is still
// caught against a stable reference. On Keep the retention state is
// advanced to the candidate's buffer.
func Decide(ret *Retention, candidate image.Image, threshold float64, bypass bool) Decision {
	if bypass {
		ret.prev = toLuminance(candidate)
		return Keep
	}

	cand := toLuminance(candidate)

	// First candidate is always retained.
	if ret.prev == nil {
		ret.prev = cand
		return Keep
	}

	// Dimension changes mid-stream make SSIM undefined; keep the frame.
	if ret.prev.w != cand.w || ret.prev.h != cand.h {
		ret.prev = cand
		return Keep
	}

	score := ssim(ret.prev, cand)
	logging.Debug("ssim score %.4f (threshold %.2f)", score, threshold)
	if score >= threshold {
		return Discard
	}

	ret.prev = cand
	return Keep
}
