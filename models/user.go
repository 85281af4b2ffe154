package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleContributor UserRole = "CONTRIBUTOR"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleContributor
}

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);default:'CONTRIBUTOR'"`
	Approved  bool      `json:"approved"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanAuthenticate reports whether the account passes the enabled/approved gate.
func (u *User) CanAuthenticate() bool {
	return u.Enabled && u.Approved
}

// AuthUser is the projection of the calling account attached to a request.
// It never carries the password hash.
type AuthUser struct {
	ID       uint     `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	Approved bool     `json:"approved"`
	Enabled  bool     `json:"enabled"`
}

func NewAuthUser(u *User) *AuthUser {
	return &AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Approved: u.Approved,
		Enabled:  u.Enabled,
	}
}

// ArticleCount is serialized as the `_count` block of a user row.
type ArticleCount struct {
	Articles int64 `json:"articles"`
}

// UserListItem is a directory row with its article count.
type UserListItem struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      UserRole     `json:"role"`
	Approved  bool         `json:"approved"`
	Enabled   bool         `json:"enabled"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Count     ArticleCount `json:"_count" gorm:"embedded;embeddedPrefix:count_"`
}

// ArticleSummary is the short article projection embedded in a user detail.
type ArticleSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserDetail struct {
	UserListItem
	Articles []ArticleSummary `json:"articles"`
}

type UserFilter struct {
	Role     UserRole
	Approved *bool
}

type UserCounts struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Admins       int64 `json:"admins"`
	Contributors int64 `json:"contributors"`
}

type ArticleCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
}

type UserStats struct {
	Users    UserCounts    `json:"users"`
	Articles ArticleCounts `json:"articles"`
}
