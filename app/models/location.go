package models

type Location struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(256)" json:"name" validate:"required,min=1,max=256"`
	Publication `gorm:"embedded"`
}
