package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(256)" json:"title" validate:"required,min=1,max=256"`
	Text        string    `gorm:"type:text" json:"text" validate:"required"`
	PubDate     time.Time `gorm:"index" json:"pub_date"`
	AuthorID    uint      `gorm:"index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	LocationID  *uint     `gorm:"index" json:"location_id"`
	Location    *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	ImagePath   string    `gorm:"type:varchar(255)" json:"image_path"`
	Publication `gorm:"embedded"`
}

// VisibleAt reports whether the post may be shown to the public at the given
// instant. A post whose category was removed (CategoryID NULL) is never
// publicly visible; pub_date equal to now counts as visible.
func (p *Post) VisibleAt(now time.Time) bool {
	return p.IsPublished &&
		!p.PubDate.After(now) &&
		p.Category != nil &&
		p.Category.IsPublished
}

// OwnerID identifies the only user allowed to edit or delete the post.
func (p *Post) OwnerID() uint {
	return p.AuthorID
}

func (p *Post) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
