package frames

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"visual-scout/internal/logging"

	_ "image/jpeg"
	_ "image/png"
)

// runCommand executes a binary and returns its stdout. Tests substitute
// this to drive sources without ffmpeg installed.
type runCommand func(name string, args ...string) ([]byte, error)

func execRun(name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v, stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// videoProbe holds the stream properties needed to plan sampling.
type videoProbe struct {
	fps        float64
	frameCount int
}

// probeVideo reads the frame rate and total frame count of the first
// video stream. Containers without nb_frames fall back to duration×fps.
func probeVideo(run runCommand, path string) (videoProbe, error) {
	out, err := run("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	)
	if err != nil {
		return videoProbe{}, fmt.Errorf("probe %s: %w", path, err)
	}

	var probe videoProbe
	var duration float64

	for _, line := range strings.Split(string(out), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || value == "N/A" || value == "" {
			continue
		}
		switch key {
		case "r_frame_rate":
			probe.fps = parseRational(value)
		case "nb_frames":
			if n, err := strconv.Atoi(value); err == nil {
				probe.frameCount = n
			}
		case "duration":
			if d, err := strconv.ParseFloat(value, 64); err == nil {
				duration = d
			}
		}
	}

	if probe.frameCount == 0 && duration > 0 && probe.fps > 0 {
		probe.frameCount = int(math.Round(duration * probe.fps))
	}
	if probe.fps <= 0 || probe.frameCount <= 0 {
		return videoProbe{}, fmt.Errorf("no usable video stream in %s", path)
	}
	return probe, nil
}

// parseRational parses ffprobe rate strings like "30000/1001" or "25".
func parseRational(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// videoSource samples a video by seeking to each candidate index and
// decoding a single frame, rather than sequentially decoding the whole
// stream. This bounds cost on long videos.
type videoSource struct {
	path     string
	interval int
	fps      float64
	count    int
	step     int
	index    int
	run      runCommand
}

func newVideoSource(path string, interval int) (Source, error) {
	return newVideoSourceWithRunner(path, interval, execRun)
}

func newVideoSourceWithRunner(path string, interval int, run runCommand) (Source, error) {
	probe, err := probeVideo(run, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUnreadable, err)
	}

	step := int(math.Round(probe.fps * float64(interval)))
	if step < 1 {
		step = 1
	}

	logging.Debug("video %s: fps=%.3f frames=%d step=%d", path, probe.fps, probe.frameCount, step)

	return &videoSource{
		path:     path,
		interval: interval,
		fps:      probe.fps,
		count:    probe.frameCount,
		step:     step,
		run:      run,
	}, nil
}

func (v *videoSource) Next() (*Record, error) {
	if v.index >= v.count {
		return nil, io.EOF
	}

	// Clamp the seek target so the final step cannot overshoot the stream.
	seek := min(v.index, v.count-1)
	offset := float64(seek) / v.fps

	out, err := v.run("ffmpeg",
		"-v", "error",
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		"-i", v.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil || len(out) == 0 {
		// A failed seek-decode ends the stream; frames already yielded stand.
		logging.Warn("could not decode frame at index %d of %s: %v", v.index, v.path, err)
		return nil, io.EOF
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		logging.Warn("undecodable frame at index %d of %s: %v", v.index, v.path, err)
		return nil, io.EOF
	}

	startSec := int(float64(v.index) / v.fps)
	rec := &Record{
		Image: img,
		Start: FormatTimestamp(startSec),
		End:   FormatTimestamp(startSec + v.interval),
	}

	v.index += v.step
	return rec, nil
}

func (v *videoSource) Close() error { return nil }
