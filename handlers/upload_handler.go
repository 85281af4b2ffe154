package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

type UploadHandler struct {
	mediaService services.MediaService
	helper       *helper.HTTPHelper
}

func NewUploadHandler(mediaService services.MediaService, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{mediaService: mediaService, helper: h}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, closeFile, err := formFile(c, "image")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}
	defer closeFile()

	image, err := h.mediaService.UploadImage(c.Request.Context(), file, c.PostForm("caption"), c.PostForm("alt"))
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Image uploaded successfully", gin.H{"image": image})
}

func (h *UploadHandler) UploadVideo(c *gin.Context) {
	file, closeFile, err := formFile(c, "video")
	if err != nil {
		h.helper.SendError(c, err)
		return
	}
	defer closeFile()

	video, err := h.mediaService.UploadVideo(c.Request.Context(), file, c.PostForm("caption"))
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "Video uploaded successfully", gin.H{"video": video})
}

func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.helper.SendError(c, multipartError("images", err))
		return
	}

	headers := form.File["images"]
	files := make([]*media.File, 0, len(headers))
	for _, fh := range headers {
		file, closeFile, err := openFile(fh)
		if err != nil {
			h.helper.SendError(c, err)
			return
		}
		defer closeFile()
		files = append(files, file)
	}

	images, err := h.mediaService.UploadImages(c.Request.Context(), files)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, strconv.Itoa(len(images))+" images uploaded successfully", gin.H{"images": images})
}

func (h *UploadHandler) DeleteFile(c *gin.Context) {
	publicID, err := publicIDParam(c)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	kind := models.MediaKind(c.DefaultQuery("resourceType", string(models.MediaImage)))
	if !kind.Valid() {
		h.helper.SendError(c, models.NewValidationError("resourceType", "resourceType must be one of [image video]"))
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), publicID, kind); err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "File deleted successfully", nil)
}

func (h *UploadHandler) TransformImage(c *gin.Context) {
	publicID, err := publicIDParam(c)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	var req models.TransformImageRequest
	if err := h.helper.BindOptionalJSON(c, &req); err != nil {
		h.helper.SendError(c, err)
		return
	}

	result, err := h.mediaService.TransformImage(publicID, req)
	if err != nil {
		h.helper.SendError(c, err)
		return
	}

	h.helper.SendSuccess(c, "", result)
}

// formFile opens an optional single-file field. A missing field yields a
// nil file so the service reports it.
func formFile(c *gin.Context, field string) (*media.File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, nil, multipartError(field, err)
	}
	return openFile(fh)
}

func openFile(fh *multipart.FileHeader) (*media.File, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	file := &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}
	return file, func() { _ = f.Close() }, nil
}

func multipartError(field string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return models.NewValidationError(field, "File too large")
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return models.NewValidationError(field, "request must be multipart/form-data")
	}
	return models.NewValidationError(field, "No "+field+" file provided")
}

// publicIDParam reads a provider id that may contain folder separators.
func publicIDParam(c *gin.Context) (string, error) {
	publicID := strings.Trim(c.Param("publicId"), "/")
	if publicID == "" {
		return "", models.NewValidationError("publicId", "publicId is required")
	}
	return publicID, nil
}
