package media

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/asset"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"

	"github.com/zahid-akhtar7979/wildlife-api/models"
)

const videoPosterTransformation = "c_fill,h_450,w_800/q_auto:good"

var (
	thumbnailSize = models.Transformation{Width: 300, Height: 200, Crop: "fill", Quality: "auto:good"}
	mediumSize    = models.Transformation{Width: 800, Height: 600, Crop: "limit", Quality: "auto:good"}
	largeSize     = models.Transformation{Width: 1200, Height: 800, Crop: "limit", Quality: "auto:good"}

	// DefaultTransformation fills the gaps of an ad-hoc transform request.
	DefaultTransformation = models.Transformation{Width: 800, Height: 600, Crop: "limit", Quality: "auto:good"}
)

// URLBuilder renders delivery URLs for stored public ids. Only the cloud
// name is needed; nothing is signed.
type URLBuilder struct {
	conf *cldconfig.Configuration
}

func NewURLBuilder(cloudName string) (*URLBuilder, error) {
	conf, err := cldconfig.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("cloudinary url config: %w", err)
	}
	conf.URL.Analytics = false
	return &URLBuilder{conf: conf}, nil
}

// ImageSizes returns the responsive variants of an image; original is the
// stored delivery URL.
func (b *URLBuilder) ImageSizes(publicID, original string) (*models.ImageSizes, error) {
	sizes := &models.ImageSizes{Original: original}
	for _, v := range []struct {
		dst *string
		t   models.Transformation
	}{
		{&sizes.Thumbnail, thumbnailSize},
		{&sizes.Medium, mediumSize},
		{&sizes.Large, largeSize},
	} {
		u, err := b.Image(publicID, v.t)
		if err != nil {
			return nil, err
		}
		*v.dst = u
	}
	return sizes, nil
}

// Image renders one transformed image URL with automatic format selection.
func (b *URLBuilder) Image(publicID string, t models.Transformation) (string, error) {
	img, err := asset.Image(publicID, b.conf)
	if err != nil {
		return "", err
	}
	img.Transformation = imageComponent(t)
	return img.String()
}

// VideoThumbnail renders a JPEG poster frame for a video.
func (b *URLBuilder) VideoThumbnail(publicID string) (string, error) {
	video, err := asset.Video(publicID+".jpg", b.conf)
	if err != nil {
		return "", err
	}
	video.Transformation = videoPosterTransformation
	return video.String()
}

// imageComponent renders the parameters in the provider's canonical
// alphabetical order.
func imageComponent(t models.Transformation) string {
	params := []string{"f_auto"}
	if t.Crop != "" {
		params = append(params, "c_"+t.Crop)
	}
	if t.Height > 0 {
		params = append(params, "h_"+strconv.Itoa(t.Height))
	}
	if t.Quality != "" {
		params = append(params, "q_"+t.Quality)
	}
	if t.Width > 0 {
		params = append(params, "w_"+strconv.Itoa(t.Width))
	}
	sort.Strings(params)
	return strings.Join(params, ",")
}
