package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/models"
)

const (
	imageUploadTransformation = "c_limit,f_auto,h_800,q_auto:good,w_1200"
	videoEagerTransformation  = "c_limit,h_720,q_auto:good,vc_h264,w_1280"
	destroyOK                 = "ok"
)

type CloudinaryGateway struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryGateway(cfg config.CloudinaryConfig) (*CloudinaryGateway, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}
	return &CloudinaryGateway{cld: cld}, nil
}

func (g *CloudinaryGateway) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	params := uploader.UploadParams{
		PublicID:       in.PublicID,
		Folder:         ImageFolder,
		ResourceType:   string(models.MediaImage),
		Transformation: imageUploadTransformation,
	}
	if in.Kind == models.MediaVideo {
		eagerAsync := true
		params = uploader.UploadParams{
			PublicID:     in.PublicID,
			Folder:       VideoFolder,
			ResourceType: string(models.MediaVideo),
			Eager:        videoEagerTransformation,
			EagerAsync:   &eagerAsync,
		}
	}

	res, err := g.cld.Upload.Upload(ctx, in.Content, params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, errors.New("cloudinary upload: " + res.Error.Message)
	}

	return &UploadResult{
		PublicID: res.PublicID,
		URL:      res.SecureURL,
		Format:   res.Format,
	}, nil
}

func (g *CloudinaryGateway) Delete(ctx context.Context, publicID string, kind models.MediaKind) (bool, error) {
	res, err := g.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return false, fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return false, errors.New("cloudinary destroy: " + res.Error.Message)
	}
	return res.Result == destroyOK, nil
}
