package dto

// UploadDescriptor is what the ingress hands to the dispatcher for one
// accepted upload. The file at Path is owned by the dispatcher from then on.
type UploadDescriptor struct {
	Path         string
	OriginalName string
	Size         int64
	MimeType     string
	Category     string
}

// UploadResult is the dispatcher's answer: asset URLs for images, a job id
// for videos.
type UploadResult struct {
	Kind         string
	AssetURL     string
	ThumbnailURL string
	JobID        string
	Status       string
	Message      string
}

type UploadResponse struct {
	Success      bool   `json:"success"`
	CdnURL       string `json:"cdnUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	JobID        string `json:"jobId,omitempty"`
	Status       string `json:"status,omitempty"`
	Message      string `json:"message,omitempty"`
	Type         string `json:"type"`
	OriginalName string `json:"originalName"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ImageOutput is produced by the image transcoder; both files are new and
// owned by the caller.
type ImageOutput struct {
	FullPath  string
	ThumbPath string
	Quality   int
}
