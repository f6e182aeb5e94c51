package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Comment is listed oldest-first under its post, unlike posts which are
// ordered newest-first.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text" json:"text" validate:"required,min=1"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    uint      `gorm:"index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OwnerID identifies the only user allowed to edit or delete the comment.
func (c *Comment) OwnerID() uint {
	return c.AuthorID
}

func (c *Comment) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
