package repository

import (
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetPublishedBySlug resolves a category by slug for public pages. An
// unknown slug and a hidden category both come back as
// gorm.ErrRecordNotFound, so callers cannot tell them apart.
func (r *categoryRepository) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListPublished retrieves published categories for the post form select
func (r *categoryRepository) ListPublished() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_published = ?", true).Order("title ASC").
		Find(&categories).Error
	return categories, err
}

// Update saves changes to an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category; posts keep existing with a NULL category and
// drop out of public listings.
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
