package constants

const (
	StatusOK         = "ok"
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusUploading  = "uploading"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusNotFound   = "not_found"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Job messages shown to pollers.
const (
	MsgJobQueued      = "Video upload completed, processing queued..."
	MsgJobProcessing  = "Processing video..."
	MsgJobUploading   = "Uploading..."
	MsgJobCompleted   = "completed"
	MsgJobNotFound    = "Job not found"
	MsgVideoAccepted  = "Video uploaded successfully, processing in background..."
	MsgServiceStopped = "service shutting down"
)
