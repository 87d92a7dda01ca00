package frames

import (
	"fmt"
	"strconv"
	"strings"
)

// ProbeDuration returns the duration of a video or animated GIF in
// seconds, read with ffprobe. Used by the cost estimator, which only
// needs container-level metadata.
func ProbeDuration(path string) (float64, error) {
	return probeDuration(execRun, path)
}

func probeDuration(run runCommand, path string) (float64, error) {
	out, err := run("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration of %s: %w", path, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration of %s: %w", path, err)
	}
	return duration, nil
}
