package repository

import (
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
)

// PostWithCount is a post annotated with its comment count for listings.
type PostWithCount struct {
	models.Post
	CommentCount int64
}

// PostRepository defines the interface for post-related database operations.
// Every List* method orders by pub_date DESC with id ASC tie-breaks and
// annotates comment counts in a single aggregated query.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	ListPublished(offset, limit int) ([]PostWithCount, error)
	CountPublished() (int64, error)
	ListByCategory(categoryID uint, offset, limit int) ([]PostWithCount, error)
	CountByCategory(categoryID uint) (int64, error)
	ListByAuthor(authorID uint, includeHidden bool, offset, limit int) ([]PostWithCount, error)
	CountByAuthor(authorID uint, includeHidden bool) (int64, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetPublishedBySlug(slug string) (*models.Category, error)
	ListPublished() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

// LocationRepository defines the interface for location-related operations
type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id uint) (*models.Location, error)
	ListPublished() ([]models.Location, error)
	Update(location *models.Location) error
	Delete(id uint) error
}

// CommentRepository defines the interface for comment-related operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	// GetByIDAndPost resolves a comment by its own id and its parent post's
	// id together; a mismatch on either is a not-found.
	GetByIDAndPost(commentID, postID uint) (*models.Comment, error)
	ListByPost(postID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	// EmailTakenByOther checks the email against all users except the given
	// one, so a no-op profile save never conflicts with itself.
	EmailTakenByOther(email string, userID uint) (bool, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Post     PostRepository
	Category CategoryRepository
	Location LocationRepository
	Comment  CommentRepository
	User     UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Location: NewLocationRepository(db),
		Comment:  NewCommentRepository(db),
		User:     NewUserRepository(db),
	}
}
