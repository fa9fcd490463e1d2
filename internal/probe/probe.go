// Package probe wraps ffprobe and maps its JSON output to the stream facts
// the import rules need.
package probe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/pkg/quality"
)

// DefaultBinary is used when no ffprobe path is configured.
const DefaultBinary = "ffprobe"

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index            int    `json:"index"`
	CodecName        string `json:"codec_name"`
	CodecType        string `json:"codec_type"`
	Duration         string `json:"duration"`
	BitRate          string `json:"bit_rate"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	SampleRate       string `json:"sample_rate"`
	Channels         int    `json:"channels"`
	BitsPerSample    int    `json:"bits_per_sample"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Prober inspects a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (Result, error)
}

// Command runs an ffprobe binary.
type Command struct {
	Binary string
}

// Probe implements Prober.
func (c Command) Probe(ctx context.Context, path string) (Result, error) {
	return Inspect(ctx, c.Binary, path)
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("ffprobe inspect %s: %w", path, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("ffprobe inspect %s: %w: %s", path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect %s: %w", path, err)
	}
	return Decode(output)
}

// Decode parses ffprobe JSON output.
func Decode(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// VideoStreamCount returns the number of video streams discovered.
// Cover art (a single-frame mjpeg/png "video" stream) is not counted.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && !isCoverArt(stream) {
			count++
		}
	}
	return count
}

func isCoverArt(s Stream) bool {
	switch strings.ToLower(s.CodecName) {
	case "mjpeg", "png", "bmp", "gif":
		return true
	}
	return false
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// FirstAudio returns the first audio stream, if any.
func (r Result) FirstAudio() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			return stream, true
		}
	}
	return Stream{}, false
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
// Falls back to the longest stream duration when the container reports none.
func (r Result) DurationSeconds() float64 {
	if d := parseFloat(r.Format.Duration); d > 0 {
		return d
	}
	longest := 0.0
	for _, stream := range r.Streams {
		if d := parseFloat(stream.Duration); d > longest {
			longest = d
		}
	}
	return longest
}

// Duration returns DurationSeconds as a time.Duration.
func (r Result) Duration() time.Duration {
	d := r.DurationSeconds()
	if math.IsNaN(d) || d <= 0 {
		return 0
	}
	return time.Duration(math.Round(d * float64(time.Second)))
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	return nonNegative(parseFloat(r.Format.BitRate))
}

// Tracks summarizes the streams for the playable-track rules.
func (r Result) Tracks() decision.Tracks {
	t := decision.Tracks{
		VideoStreams: r.VideoStreamCount(),
		AudioStreams: r.AudioStreamCount(),
	}
	if a, ok := r.FirstAudio(); ok {
		t.AudioChannels = a.Channels
		t.SampleRate = int(nonNegative(parseFloat(a.SampleRate)))
	}
	return t
}

// AudioHint describes the first audio stream for music quality parsing.
// Stream bitrate is preferred; the container bitrate is used for files
// whose codec reports none (VBR MP3).
func (r Result) AudioHint() quality.AudioHint {
	a, ok := r.FirstAudio()
	if !ok {
		return quality.AudioHint{}
	}
	bps := nonNegative(parseFloat(a.BitRate))
	if bps == 0 {
		bps = r.BitRate()
	}
	bits := a.BitsPerSample
	if raw, err := strconv.Atoi(strings.TrimSpace(a.BitsPerRawSample)); err == nil && raw > bits {
		bits = raw
	}
	return quality.AudioHint{
		Codec:         strings.ToLower(a.CodecName),
		BitRateKbps:   int((bps + 500) / 1000),
		BitsPerSample: bits,
	}
}

func nonNegative(v float64) int64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int64(v)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
