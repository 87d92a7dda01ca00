package labeler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"visual-scout/internal/logging"
)

const gridsDirSuffix = "__frames__grids"

var gridNamePattern = regexp.MustCompile(`^grid_(\d+-\d{2}-\d{2})_(\d+-\d{2}-\d{2})\.jpg$`)

// ParseGridName extracts the sanitized start and end timestamps from a
// grid filename such as grid_0-00-00_0-00-08.jpg.
func ParseGridName(name string) (start, end string, ok bool) {
	m := gridNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// LabelDirectory labels every grid image under gridsRoot, which is
// expected to hold one <media>__frames__grids directory per input
// file. Per-grid results land in outputDir/<media>/ alongside one
// combined <media>.json mapping <start>_<end> keys to label arrays.
func (c *Client) LabelDirectory(ctx context.Context, gridsRoot, outputDir string) error {
	entries, err := os.ReadDir(gridsRoot)
	if err != nil {
		return fmt.Errorf("read grids directory: %w", err)
	}

	labeled := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), gridsDirSuffix) {
			continue
		}
		media := strings.TrimSuffix(entry.Name(), gridsDirSuffix)
		if err := c.labelMedia(ctx, filepath.Join(gridsRoot, entry.Name()), outputDir, media); err != nil {
			return err
		}
		labeled++
	}
	if labeled == 0 {
		return fmt.Errorf("no grid directories found under %s", gridsRoot)
	}
	return nil
}

func (c *Client) labelMedia(ctx context.Context, gridsDir, outputDir, media string) error {
	entries, err := os.ReadDir(gridsDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", gridsDir, err)
	}

	mediaOut := filepath.Join(outputDir, media)
	if err := os.MkdirAll(mediaOut, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	combined := make(map[string][]string)
	for _, entry := range entries {
		start, end, ok := ParseGridName(entry.Name())
		if !ok {
			continue
		}
		labels, err := c.LabelGrid(ctx, filepath.Join(gridsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("label %s: %w", entry.Name(), err)
		}
		name := fmt.Sprintf("visual_content_%s_%s.json", start, end)
		if err := writeJSON(filepath.Join(mediaOut, name), labels); err != nil {
			return err
		}
		combined[start+"_"+end] = labels.Labels
		logging.Info("labeled %s (%d labels)", entry.Name(), len(labels.Labels))
	}

	if len(combined) == 0 {
		logging.Warn("no grid images found in %s", gridsDir)
		return nil
	}
	return writeJSON(filepath.Join(mediaOut, media+".json"), combined)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
