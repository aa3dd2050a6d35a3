package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// commandContext is swapped in tests to fake the subprocess.
var commandContext = exec.CommandContext

// ProbeResult carries the metadata extracted from a video file.
type ProbeResult struct {
	// Title is the container title tag, or the file name when untagged.
	Title string
	// DurationSeconds is the container duration, 0 when unavailable.
	DurationSeconds float64
}

// FFProbe extracts video metadata by shelling out to ffprobe.
type FFProbe struct {
	binary string
}

// NewFFProbe creates a prober using the given ffprobe binary.
// An empty binary defaults to "ffprobe" on PATH.
func NewFFProbe(binary string) *FFProbe {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary}
}

// ffprobeOutput models the subset of ffprobe's JSON output we consume.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		Tags     struct {
			Title string `json:"title"`
		} `json:"tags"`
	} `json:"format"`
}

// Probe executes ffprobe against the given path and decodes the JSON response.
func (p *FFProbe) Probe(ctx context.Context, path string) (ProbeResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ProbeResult{}, errors.New("ffprobe: empty path")
	}

	cmd := commandContext(ctx, p.binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe parse: %w", err)
	}

	title := strings.TrimSpace(parsed.Format.Tags.Title)
	if title == "" {
		title = TitleFromPath(path)
	}

	duration, _ := strconv.ParseFloat(parsed.Format.Duration, 64)
	if duration < 0 {
		duration = 0
	}

	return ProbeResult{Title: title, DurationSeconds: duration}, nil
}

// TitleFromPath derives a display title from a file path: the base name
// without its extension. It is the degraded title used when probing fails.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
