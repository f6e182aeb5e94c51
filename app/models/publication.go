package models

import "time"

// Publication carries the moderation metadata shared by Post, Category and
// Location: an unchecked IsPublished hides the record from public pages.
type Publication struct {
	IsPublished bool      `gorm:"type:tinyint(1);default:1" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
