package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN CONTRIBUTOR"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type UpdateUserRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=2"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Role     *UserRole `json:"role" validate:"omitempty,oneof=ADMIN CONTRIBUTOR"`
	Approved *bool     `json:"approved"`
	Enabled  *bool     `json:"enabled"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

type ApproveUserRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type CreateArticleRequest struct {
	Title     string   `json:"title" validate:"required,min=5"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt" validate:"required,min=10,max=500"`
	Category  *string  `json:"category"`
	Tags      []string `json:"tags"`
	Images    []Image  `json:"images"`
	Videos    []Video  `json:"videos"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
}

func (r *CreateArticleRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Excerpt = strings.TrimSpace(r.Excerpt)
	r.Category = trimOptional(r.Category)
}

// UpdateArticleRequest carries a partial update. Nil pointers are absent
// fields; Category distinguishes an explicit null (clear) from absence.
type UpdateArticleRequest struct {
	Title     *string        `json:"title" validate:"omitempty,min=5"`
	Content   *string        `json:"content"`
	Excerpt   *string        `json:"excerpt" validate:"omitempty,min=10,max=500"`
	Category  NullableString `json:"category"`
	Tags      *[]string      `json:"tags"`
	Images    *[]Image       `json:"images"`
	Videos    *[]Video       `json:"videos"`
	Published *bool          `json:"published"`
	Featured  *bool          `json:"featured"`
}

func (r *UpdateArticleRequest) Normalize() {
	r.Title = trimOptional(r.Title)
	r.Excerpt = trimOptional(r.Excerpt)
	r.Category.Value = trimOptional(r.Category.Value)
}

type PublishArticleRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// NullableString records whether the key was present in the JSON body and,
// if so, whether it was null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

type TransformImageRequest struct {
	Width   int    `json:"width" validate:"omitempty,min=1,max=4000"`
	Height  int    `json:"height" validate:"omitempty,min=1,max=4000"`
	Crop    string `json:"crop" validate:"omitempty,oneof=fill limit fit scale crop thumb pad"`
	Quality string `json:"quality" validate:"omitempty,image_quality"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
