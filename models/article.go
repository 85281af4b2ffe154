package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Article struct {
	ID          uint                       `json:"id" gorm:"primarykey"`
	Title       string                     `json:"title" gorm:"not null"`
	Content     string                     `json:"content" gorm:"type:text"`
	Excerpt     string                     `json:"excerpt" gorm:"type:text;not null"`
	Category    *string                    `json:"category"`
	Tags        pq.StringArray             `json:"tags" gorm:"type:text[];not null;default:'{}'"`
	Images      datatypes.JSONSlice[Image] `json:"images" gorm:"type:jsonb;not null;default:'[]'"`
	Videos      datatypes.JSONSlice[Video] `json:"videos" gorm:"type:jsonb;not null;default:'[]'"`
	Published   bool                       `json:"published" gorm:"default:false;index"`
	Featured    bool                       `json:"featured" gorm:"default:false"`
	Views       int64                      `json:"views" gorm:"default:0"`
	PublishDate *time.Time                 `json:"publishDate"`
	AuthorID    uint                       `json:"authorId" gorm:"not null;index"`
	Author      *AuthorSummary             `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// SetPublished applies a publish-state transition. Every transition,
// including Published->Published, restamps the publish date.
func (a *Article) SetPublished(published bool, now time.Time) {
	a.Published = published
	if published {
		a.PublishDate = &now
		return
	}
	a.PublishDate = nil
}

// AuthorSummary is the public author projection: never the password.
type AuthorSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (AuthorSummary) TableName() string {
	return "users"
}

type ArticleFilter struct {
	Search   string
	Tags     []string
	Category string
	Featured *bool
}
