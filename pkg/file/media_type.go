package file

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	consts "media-publisher/pkg/constants"
)

var allowedMimeTypes = map[string]string{
	"image/jpeg":      consts.MediaImage,
	"image/png":       consts.MediaImage,
	"image/gif":       consts.MediaImage,
	"image/webp":      consts.MediaImage,
	"video/mp4":       consts.MediaVideo,
	"video/avi":       consts.MediaVideo,
	"video/quicktime": consts.MediaVideo,
	"video/x-ms-wmv":  consts.MediaVideo,
	"video/x-flv":     consts.MediaVideo,
	"video/webm":      consts.MediaVideo,
}

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".avi":  "video/avi",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
}

// NormalizeMime strips parameters and lowercases a Content-Type value.
func NormalizeMime(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// CategoryOf returns "image" or "video" for an allowed MIME type, or "".
func CategoryOf(mimeType string) string {
	return allowedMimeTypes[NormalizeMime(mimeType)]
}

func GetMimeTypeFromExtension(filename string) string {
	if mt, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return "application/octet-stream"
}

func IsImageFile(filename string) bool {
	return CategoryOf(GetMimeTypeFromExtension(filename)) == consts.MediaImage
}

func IsVideoFile(filename string) bool {
	return CategoryOf(GetMimeTypeFromExtension(filename)) == consts.MediaVideo
}

// ValidateUpload checks the file extension and declared MIME type against the
// allow-lists. An empty or generic MIME type falls back to the extension.
func ValidateUpload(filename, mimeType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("file extension %q is not allowed", ext)
	}

	mt := NormalizeMime(mimeType)
	if mt == "" || mt == "application/octet-stream" {
		mt = GetMimeTypeFromExtension(filename)
	}
	if _, ok := allowedMimeTypes[mt]; !ok {
		return "", fmt.Errorf("file type %q is not allowed", mt)
	}
	return mt, nil
}
