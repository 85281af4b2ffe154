package models

// Image is an image descriptor embedded in an article. Sizes are rendered
// from ID on read and are never persisted.
type Image struct {
	ID      string      `json:"id"`
	URL     string      `json:"url"`
	Caption string      `json:"caption,omitempty"`
	Alt     string      `json:"alt,omitempty"`
	Sizes   *ImageSizes `json:"sizes,omitempty"`
}

type ImageSizes struct {
	Thumbnail string `json:"thumbnail"`
	Medium    string `json:"medium"`
	Large     string `json:"large"`
	Original  string `json:"original"`
}

type Video struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Caption   string   `json:"caption,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Duration  *float64 `json:"duration"`
	Format    string   `json:"format,omitempty"`
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

type Transformation struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Crop    string `json:"crop"`
	Quality string `json:"quality"`
}
