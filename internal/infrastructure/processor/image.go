package processor

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"media-publisher/internal/domain/dto"
	"media-publisher/internal/infrastructure/metrics"
	"media-publisher/internal/pkg/fileutils"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "golang.org/x/image/webp" // webp decoder for imaging.Open
)

const (
	ImageExt    = ".webp"
	ThumbSuffix = "-thumb"

	ThumbWidth  = 640
	ThumbHeight = 360

	mib = 1024 * 1024
)

type ResizeOption struct {
	Width   int
	Height  int
	Quality int // 1-100
}

// QualityForSize picks the lossy WebP quality from the declared upload size.
func QualityForSize(size int64) int {
	switch {
	case size > 10*mib:
		return 60
	case size > 5*mib:
		return 70
	default:
		return 80
	}
}

type ImageTranscoder struct {
	outputDir string
	log       *zap.Logger
	metrics   *metrics.Metrics
}

func NewImageTranscoder(outputDir string, log *zap.Logger, m *metrics.Metrics) *ImageTranscoder {
	return &ImageTranscoder{
		outputDir: outputDir,
		log:       log.With(zap.String("component", "image_transcoder")),
		metrics:   m,
	}
}

// Transcode writes an optimized full-size copy and a thumbnail of inputPath.
// On any failure no output file is left behind.
func (t *ImageTranscoder) Transcode(ctx context.Context, inputPath string, size int64) (*dto.ImageOutput, error) {
	start := time.Now()
	quality := QualityForSize(size)

	base := "optimized-" + uuid.NewString()
	out := &dto.ImageOutput{
		FullPath:  filepath.Join(t.outputDir, base+ImageExt),
		ThumbPath: filepath.Join(t.outputDir, base+ThumbSuffix+ImageExt),
		Quality:   quality,
	}

	if err := t.transcode(ctx, inputPath, out); err != nil {
		if rmErr := fileutils.RemoveFiles(out.FullPath, out.ThumbPath); rmErr != nil {
			t.log.Warn("partial image outputs not removed", zap.Error(rmErr))
		}
		return nil, err
	}

	t.metrics.ObserveTranscode("image", time.Since(start))
	t.log.Debug("image transcoded",
		zap.String("input", filepath.Base(inputPath)),
		zap.Int("quality", quality),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (t *ImageTranscoder) transcode(ctx context.Context, inputPath string, out *dto.ImageOutput) error {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("resim açılamadı: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := saveWebP(img, out.FullPath, out.Quality); err != nil {
		return fmt.Errorf("resim kaydedilemedi: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	thumb := ResizeOption{Width: ThumbWidth, Height: ThumbHeight, Quality: out.Quality}
	// Fit never enlarges an image already inside the box.
	thumbImg := imaging.Fit(img, thumb.Width, thumb.Height, imaging.Lanczos)
	if err := saveWebP(thumbImg, out.ThumbPath, thumb.Quality); err != nil {
		return fmt.Errorf("thumbnail kaydedilemedi: %w", err)
	}
	return nil
}

func saveWebP(img image.Image, path string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := webp.Encode(f, img, webp.Options{Quality: quality}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
