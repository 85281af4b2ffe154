package services

import (
	"context"
	"strings"
	"time"

	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/models"
)

var errNothingDeleted = models.ErrorNotFound{Message: "File not found or already deleted"}

// TransformResult is the ad-hoc transformed delivery URL with the applied
// parameters.
type TransformResult struct {
	URL            string                `json:"url"`
	Transformation models.Transformation `json:"transformation"`
}

type MediaService interface {
	UploadImage(ctx context.Context, file *media.File, caption, alt string) (*models.Image, error)
	UploadVideo(ctx context.Context, file *media.File, caption string) (*models.Video, error)
	UploadImages(ctx context.Context, files []*media.File) ([]models.Image, error)
	Delete(ctx context.Context, publicID string, kind models.MediaKind) error
	TransformImage(publicID string, req models.TransformImageRequest) (*TransformResult, error)
}

type mediaService struct {
	gateway media.Gateway
	urls    *media.URLBuilder
	now     func() time.Time
}

func NewMediaService(gateway media.Gateway, urls *media.URLBuilder) MediaService {
	return &mediaService{
		gateway: gateway,
		urls:    urls,
		now:     time.Now,
	}
}

func (s *mediaService) UploadImage(ctx context.Context, file *media.File, caption, alt string) (*models.Image, error) {
	if err := checkFile(file, "image", models.MediaImage, media.MaxImageBytes); err != nil {
		return nil, err
	}

	res, err := s.upload(ctx, file, models.MediaImage)
	if err != nil {
		return nil, err
	}

	sizes, err := s.urls.ImageSizes(res.PublicID, res.URL)
	if err != nil {
		return nil, err
	}

	return &models.Image{
		ID:      res.PublicID,
		URL:     res.URL,
		Caption: caption,
		Alt:     alt,
		Sizes:   sizes,
	}, nil
}

func (s *mediaService) UploadVideo(ctx context.Context, file *media.File, caption string) (*models.Video, error) {
	if err := checkFile(file, "video", models.MediaVideo, media.MaxVideoBytes); err != nil {
		return nil, err
	}

	res, err := s.upload(ctx, file, models.MediaVideo)
	if err != nil {
		return nil, err
	}

	thumbnail, err := s.urls.VideoThumbnail(res.PublicID)
	if err != nil {
		return nil, err
	}

	return &models.Video{
		ID:        res.PublicID,
		URL:       res.URL,
		Caption:   caption,
		Thumbnail: thumbnail,
		Format:    res.Format,
	}, nil
}

// UploadImages checks every file before sending any of them.
func (s *mediaService) UploadImages(ctx context.Context, files []*media.File) ([]models.Image, error) {
	if len(files) == 0 {
		return nil, models.NewValidationError("images", "No image files provided")
	}
	if len(files) > media.MaxImagesPerRequest {
		return nil, models.NewValidationError("images", "A maximum of 10 images can be uploaded at once")
	}
	for _, file := range files {
		if err := checkFile(file, "images", models.MediaImage, media.MaxImageBytes); err != nil {
			return nil, err
		}
	}

	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		res, err := s.upload(ctx, file, models.MediaImage)
		if err != nil {
			return nil, err
		}
		sizes, err := s.urls.ImageSizes(res.PublicID, res.URL)
		if err != nil {
			return nil, err
		}
		images = append(images, models.Image{
			ID:    res.PublicID,
			URL:   res.URL,
			Sizes: sizes,
		})
	}
	return images, nil
}

func (s *mediaService) Delete(ctx context.Context, publicID string, kind models.MediaKind) error {
	deleted, err := s.gateway.Delete(ctx, publicID, kind)
	if err != nil {
		return err
	}
	if !deleted {
		return errNothingDeleted
	}
	return nil
}

func (s *mediaService) TransformImage(publicID string, req models.TransformImageRequest) (*TransformResult, error) {
	t := media.DefaultTransformation
	if req.Width > 0 {
		t.Width = req.Width
	}
	if req.Height > 0 {
		t.Height = req.Height
	}
	if req.Crop != "" {
		t.Crop = req.Crop
	}
	if req.Quality != "" {
		t.Quality = req.Quality
	}

	u, err := s.urls.Image(publicID, t)
	if err != nil {
		return nil, err
	}

	return &TransformResult{
		URL:            u,
		Transformation: t,
	}, nil
}

func (s *mediaService) upload(ctx context.Context, file *media.File, kind models.MediaKind) (*media.UploadResult, error) {
	return s.gateway.Upload(ctx, media.UploadInput{
		Content:  file.Content,
		PublicID: media.NewPublicID(kind, s.now()),
		Kind:     kind,
	})
}

func checkFile(file *media.File, field string, kind models.MediaKind, maxBytes int64) error {
	if file == nil {
		return models.NewValidationError(field, "No "+string(kind)+" file provided")
	}
	if !strings.HasPrefix(file.ContentType, string(kind)+"/") {
		return models.NewValidationError(field, "Only "+string(kind)+" files are allowed")
	}
	if file.Size > maxBytes {
		return models.NewValidationError(field, "File too large")
	}
	return nil
}
