package processor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/config"
	"media-publisher/internal/pkg/fileutils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stderrTail = 1024

type VideoTranscoder struct {
	cfg       config.TranscodeConfig
	outputDir string
	log       *zap.Logger
	metrics   *metrics.Metrics
}

func NewVideoTranscoder(cfg config.TranscodeConfig, outputDir string, log *zap.Logger, m *metrics.Metrics) *VideoTranscoder {
	return &VideoTranscoder{
		cfg:       cfg,
		outputDir: outputDir,
		log:       log.With(zap.String("component", "video_transcoder")),
		metrics:   m,
	}
}

// Args builds the ffmpeg argument list for one H.264/AAC transcode.
func (v *VideoTranscoder) Args(inputPath, outputPath string, audioKbps int) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", v.cfg.Preset,
		"-crf", strconv.Itoa(v.cfg.CRF),
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", audioKbps),
		"-ar", strconv.Itoa(v.cfg.SampleRate),
		"-ac", strconv.Itoa(v.cfg.Channels),
		"-movflags", "+faststart",
		outputPath,
	}
}

// Transcode probes the source audio, then writes an optimized MP4 next to
// the other temp files. The partial output is removed on failure.
func (v *VideoTranscoder) Transcode(ctx context.Context, inputPath string) (string, error) {
	start := time.Now()
	audioKbps := OptimizedAudioKbps(v.ProbeAudioKbps(ctx, inputPath))
	outputPath := filepath.Join(v.outputDir, fmt.Sprintf("optimized-%s.mp4", uuid.NewString()))

	ctx, cancel := context.WithTimeout(ctx, v.cfg.TranscodeTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, v.cfg.FFmpegPath, v.Args(inputPath, outputPath, audioKbps)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if rmErr := fileutils.RemoveFiles(outputPath); rmErr != nil {
			v.log.Warn("partial video output not removed", zap.Error(rmErr))
		}
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > stderrTail {
			msg = msg[len(msg)-stderrTail:]
		}
		if msg != "" {
			return "", fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return "", fmt.Errorf("ffmpeg: %w", err)
	}

	v.metrics.ObserveTranscode("video", time.Since(start))
	v.log.Info("video transcoded",
		zap.String("output", filepath.Base(outputPath)),
		zap.Int("audio_kbps", audioKbps),
		zap.Duration("took", time.Since(start)),
	)
	return outputPath, nil
}
