package helper

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/validation"
)

const (
	textServerError      = "Server error"
	textValidationErrors = "Validation errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate *validation.Validator
	Log      zerolog.Logger
}

func NewHTTPHelper(validate *validation.Validator, log zerolog.Logger) *HTTPHelper {
	return &HTTPHelper{Validate: validate, Log: log}
}

// GetStatusCode maps a domain error onto its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr   models.ErrorValidation
		unauthorizedErr models.ErrorUnauthorized
		forbiddenErr    models.ErrorForbidden
		notFoundErr     models.ErrorNotFound
		conflictErr     models.ErrorConflict
		badRequestErr   models.ErrorBadRequest
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &badRequestErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// SendError ...
// Send error response to consumers. Unexpected errors are logged and
// answered with a generic message.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	var validationErr models.ErrorValidation
	if errors.As(err, &validationErr) {
		u.SendValidationError(c, validationErr)
		return
	}

	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		u.Log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.AbortWithStatusJSON(status, Response{Success: false, Message: textServerError})
		return
	}

	c.AbortWithStatusJSON(status, Response{Success: false, Message: err.Error()})
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, err models.ErrorValidation) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Success: false,
		Message: textValidationErrors,
		Errors:  err.Fields,
	})
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Response{Success: false, Message: message})
}

// BindJSON decodes the request body into req and validates it.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validation.DecodeError(err)
	}
	return u.Validate.Struct(req)
}

// BindOptionalJSON is BindJSON for endpoints whose body may be empty.
func (u *HTTPHelper) BindOptionalJSON(c *gin.Context, req interface{}) error {
	if c.Request.ContentLength == 0 {
		return u.Validate.Struct(req)
	}
	return u.BindJSON(c, req)
}

// ParsePagination reads page and limit from the query string.
func (u *HTTPHelper) ParsePagination(c *gin.Context) (models.PageRequest, error) {
	page := models.PageRequest{Page: models.DefaultPage, Limit: models.DefaultLimit}
	var fields []models.FieldError

	if raw, ok := c.GetQuery("page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields = append(fields, models.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			page.Page = n
		}
	}

	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.MaxLimit {
			fields = append(fields, models.FieldError{Field: "limit", Message: "limit must be between 1 and 50"})
		} else {
			page.Limit = n
		}
	}

	if len(fields) > 0 {
		return page, models.ErrorValidation{Fields: fields}
	}
	return page, nil
}

// ParseBoolQuery reads an optional true/false query parameter.
func (u *HTTPHelper) ParseBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	switch raw {
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, models.NewValidationError(name, name+" must be true or false")
}

// ParseID reads a positive numeric path parameter.
func (u *HTTPHelper) ParseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError(name, name+" must be a positive integer")
	}
	return uint(id), nil
}
