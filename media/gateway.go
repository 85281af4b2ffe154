// Package media talks to the hosted image/video provider and renders the
// derived delivery URLs the API hands back to clients.
package media

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zahid-akhtar7979/wildlife-api/models"
)

const (
	ImageFolder = "wildlife-images"
	VideoFolder = "wildlife-videos"

	MaxImageBytes       = 10 << 20
	MaxVideoBytes       = 100 << 20
	MaxImagesPerRequest = 10
)

// ErrNotConfigured is returned when no provider credentials were supplied.
var ErrNotConfigured = errors.New("media provider is not configured")

// File is an uploaded file as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type UploadInput struct {
	Content  io.Reader
	PublicID string
	Kind     models.MediaKind
}

type UploadResult struct {
	PublicID string
	URL      string
	Format   string
}

// Gateway is the provider boundary. Delete reports false when the provider
// had nothing to remove.
type Gateway interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, publicID string, kind models.MediaKind) (bool, error)
}

// NewPublicID returns a provider id such as wildlife_1700000000000_3f2a9c1b7d4e0.
func NewPublicID(kind models.MediaKind, now time.Time) string {
	prefix := "wildlife_"
	if kind == models.MediaVideo {
		prefix = "wildlife_video_"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + random
}

type disabledGateway struct{}

// Disabled returns a Gateway that fails every call with ErrNotConfigured.
func Disabled() Gateway {
	return disabledGateway{}
}

func (disabledGateway) Upload(context.Context, UploadInput) (*UploadResult, error) {
	return nil, ErrNotConfigured
}

func (disabledGateway) Delete(context.Context, string, models.MediaKind) (bool, error) {
	return false, ErrNotConfigured
}
