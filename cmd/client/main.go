package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"media-publisher/internal/domain/dto"
	consts "media-publisher/pkg/constants"
	"media-publisher/pkg/file"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("MEDIA_SERVER_URL", "http://localhost:3000/api/v1"), "Server base URL")
	filePath := flag.String("file", "", "Yüklenecek dosyanın yolu")
	interval := flag.Duration("interval", 2*time.Second, "Job status polling interval")
	timeout := flag.Duration("timeout", 30*time.Minute, "Give up waiting for a video job after this long")
	flag.Parse()

	if strings.TrimSpace(*filePath) == "" {
		log.Fatal("-file gerekli")
	}

	// İptal sinyalini yakala
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &client{base: strings.TrimRight(*server, "/"), http: &http.Client{}}

	fmt.Printf("Sunucu: %s\n", c.base)
	fmt.Printf("Dosya: %s\n", *filePath)

	resp, err := c.upload(ctx, *filePath)
	if err != nil {
		log.Fatalf("Upload başarısız: %v", err)
	}

	if resp.Type == consts.MediaImage {
		fmt.Printf("Resim yayınlandı:\n  url:   %s\n  thumb: %s\n", resp.CdnURL, resp.ThumbnailURL)
		return
	}

	fmt.Printf("Video kuyruğa alındı, job: %s\n", resp.JobID)
	pollCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	final, err := c.waitForJob(pollCtx, resp.JobID, *interval, func(st *dto.JobStatusResponse) {
		fmt.Printf("  [%s] %s %s\n", time.Now().Format("15:04:05"), st.Status, st.Message)
	})
	if err != nil {
		log.Fatalf("Job takibi başarısız: %v", err)
	}
	if final.Status != consts.StatusCompleted {
		log.Fatalf("Job %s: %s", final.Status, final.Message)
	}
	fmt.Printf("Video hazır:\n  id:       %s\n  playback: %s\n  poster:   %s\n", final.VideoID, final.PlaybackURL, final.PosterURL)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type client struct {
	base string
	http *http.Client
}

// upload streams the file as multipart field "media" without buffering it.
func (c *client) upload(ctx context.Context, path string) (*dto.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, filepath.Base(path)))
		h.Set("Content-Type", file.GetMimeTypeFromExtension(path))
		part, err := writer.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = writer.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var e dto.ErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("HTTP %d %s: %s", resp.StatusCode, e.Code, e.Error)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}

	var out dto.UploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("yanıt okunamadı: %w", err)
	}
	return &out, nil
}

func (c *client) jobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/job/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var st dto.JobStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// waitForJob polls until the job reaches a terminal status. onChange sees
// each distinct status once.
func (c *client) waitForJob(ctx context.Context, jobID string, interval time.Duration, onChange func(*dto.JobStatusResponse)) (*dto.JobStatusResponse, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := ""
	for {
		st, err := c.jobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if st.Status != last {
			last = st.Status
			if onChange != nil {
				onChange(st)
			}
		}
		switch st.Status {
		case consts.StatusCompleted, consts.StatusFailed:
			return st, nil
		case consts.StatusNotFound:
			return nil, errors.New(st.Message)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
