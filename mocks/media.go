package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/models"
)

var _ media.Gateway = (*MockGateway)(nil)

// MockGateway records uploads and serves them back for deletion.
type MockGateway struct {
	mu      sync.Mutex
	stored  map[string]models.MediaKind
	Uploads []media.UploadInput
	Err     error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{stored: make(map[string]models.MediaKind)}
}

func (g *MockGateway) Upload(ctx context.Context, in media.UploadInput) (*media.UploadResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	if in.Content != nil {
		if _, err := io.Copy(io.Discard, in.Content); err != nil {
			return nil, err
		}
	}

	folder, format := media.ImageFolder, "jpg"
	if in.Kind == models.MediaVideo {
		folder, format = media.VideoFolder, "mp4"
	}
	publicID := folder + "/" + in.PublicID

	g.Uploads = append(g.Uploads, in)
	g.stored[publicID] = in.Kind

	return &media.UploadResult{
		PublicID: publicID,
		URL:      "https://res.cloudinary.com/test/" + string(in.Kind) + "/upload/v1/" + publicID + "." + format,
		Format:   format,
	}, nil
}

func (g *MockGateway) Delete(ctx context.Context, publicID string, kind models.MediaKind) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return false, g.Err
	}
	if stored, ok := g.stored[publicID]; !ok || stored != kind {
		return false, nil
	}
	delete(g.stored, publicID)
	return true, nil
}
