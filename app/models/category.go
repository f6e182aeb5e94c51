package models

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(256)" json:"title" validate:"required,min=1,max=256"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"uniqueIndex;type:varchar(64)" json:"slug" validate:"required,min=1,max=64"`
	Publication `gorm:"embedded"`
}

func (Category) TableName() string {
	return "categories"
}
