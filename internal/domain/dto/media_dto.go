package dto

// RemoteObject is one entry of an object-store listing.
type RemoteObject struct {
	Name string
	URL  string
}

type ImageItem struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Type         string `json:"type"`
}

type VideoItem struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Poster string `json:"poster,omitempty"`
	Type   string `json:"type"`
}

type MediaItems struct {
	Images []ImageItem `json:"images"`
	Videos []VideoItem `json:"videos"`
}

type MediaListResponse struct {
	Items MediaItems `json:"items"`
}
