package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultAudioKbps is used when the source bitrate cannot be read and as
	// the upper bound of the optimized audio bitrate.
	DefaultAudioKbps = 64
)

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		BitRate   string `json:"bit_rate"`
	} `json:"streams"`
}

// OptimizedAudioKbps halves the detected bitrate, capped at 64 kbps. Any
// result that is not positive falls back to 64.
func OptimizedAudioKbps(detectedKbps int) int {
	kbps := detectedKbps / 2
	if kbps <= 0 {
		return DefaultAudioKbps
	}
	if kbps > DefaultAudioKbps {
		return DefaultAudioKbps
	}
	return kbps
}

// parseAudioKbps reads the first audio stream's bit_rate (bits/s) from
// ffprobe JSON output and returns it rounded to kbps.
func parseAudioKbps(out []byte) (int, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("ffprobe output okunamadı: %w", err)
	}
	for _, s := range probe.Streams {
		if s.CodecType != "" && s.CodecType != "audio" {
			continue
		}
		bps, err := strconv.ParseFloat(strings.TrimSpace(s.BitRate), 64)
		if err != nil || bps <= 0 {
			return 0, fmt.Errorf("audio bit_rate %q okunamadı", s.BitRate)
		}
		return int(math.Round(bps / 1000)), nil
	}
	return 0, fmt.Errorf("audio stream bulunamadı")
}

// ProbeAudioKbps returns the source audio bitrate in kbps, or
// DefaultAudioKbps when there is no audio stream or it cannot be read.
func (v *VideoTranscoder) ProbeAudioKbps(ctx context.Context, inputPath string) int {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, v.cfg.FFprobePath,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_type,bit_rate",
		"-of", "json",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		v.log.Warn("ffprobe failed, using default audio bitrate", zap.Error(err))
		return DefaultAudioKbps
	}

	kbps, err := parseAudioKbps(out)
	if err != nil {
		v.log.Debug("audio bitrate unavailable, using default", zap.Error(err))
		return DefaultAudioKbps
	}
	return kbps
}
