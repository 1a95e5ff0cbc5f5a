package dto

type JobStatusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	VideoID     string `json:"videoId,omitempty"`
	PlaybackURL string `json:"playbackUrl,omitempty"`
	PosterURL   string `json:"posterUrl,omitempty"`
}
