package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
)

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// publishedScope narrows a post query to publicly visible posts: the post is
// published, its pub_date has passed (inclusive), and it belongs to a
// published category. Posts without a category never match the join.
func (r *postRepository) publishedScope(now time.Time) *gorm.DB {
	return r.db.Model(&models.Post{}).
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ? AND posts.pub_date <= ? AND categories.is_published = ?",
			true, now, true)
}

// postOrder is newest first with insertion order as the stable tie-break.
const postOrder = "posts.pub_date DESC, posts.id ASC"

// Create creates a new post in the database
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post with its category, location, and author loaded.
// Visibility is not applied here; the caller decides based on the viewer.
func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Category").Preload("Location").Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update saves changes to an existing post
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post and its comments
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// ListPublished retrieves publicly visible posts with pagination
func (r *postRepository) ListPublished(offset, limit int) ([]PostWithCount, error) {
	var posts []models.Post
	err := r.publishedScope(time.Now()).
		Preload("Category").Preload("Location").Preload("Author").
		Order(postOrder).Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return r.annotateCommentCounts(posts)
}

// CountPublished returns the number of publicly visible posts
func (r *postRepository) CountPublished() (int64, error) {
	var count int64
	err := r.publishedScope(time.Now()).Count(&count).Error
	return count, err
}

// ListByCategory retrieves visible posts of one category with pagination
func (r *postRepository) ListByCategory(categoryID uint, offset, limit int) ([]PostWithCount, error) {
	var posts []models.Post
	err := r.publishedScope(time.Now()).
		Where("posts.category_id = ?", categoryID).
		Preload("Category").Preload("Location").Preload("Author").
		Order(postOrder).Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return r.annotateCommentCounts(posts)
}

// CountByCategory returns the number of visible posts in one category
func (r *postRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.publishedScope(time.Now()).
		Where("posts.category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// ListByAuthor retrieves one author's posts with pagination. includeHidden
// is set only when the viewer is that author: the self-view includes
// drafts, future-dated posts, and posts in hidden categories.
func (r *postRepository) ListByAuthor(authorID uint, includeHidden bool, offset, limit int) ([]PostWithCount, error) {
	query := r.authorScope(authorID, includeHidden)

	var posts []models.Post
	err := query.
		Preload("Category").Preload("Location").Preload("Author").
		Order(postOrder).Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return r.annotateCommentCounts(posts)
}

// CountByAuthor returns the number of posts ListByAuthor would yield
func (r *postRepository) CountByAuthor(authorID uint, includeHidden bool) (int64, error) {
	var count int64
	err := r.authorScope(authorID, includeHidden).Count(&count).Error
	return count, err
}

func (r *postRepository) authorScope(authorID uint, includeHidden bool) *gorm.DB {
	if includeHidden {
		return r.db.Model(&models.Post{}).Where("posts.author_id = ?", authorID)
	}
	return r.publishedScope(time.Now()).Where("posts.author_id = ?", authorID)
}

// annotateCommentCounts attaches comment counts to a page of posts with one
// aggregated query, preserving the incoming order.
func (r *postRepository) annotateCommentCounts(posts []models.Post) ([]PostWithCount, error) {
	result := make([]PostWithCount, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	type countRow struct {
		PostID uint
		Total  int64
	}
	var rows []countRow
	err := r.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}

	for _, p := range posts {
		result = append(result, PostWithCount{Post: p, CommentCount: counts[p.ID]})
	}
	return result, nil
}
