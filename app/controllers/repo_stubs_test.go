package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// Repository stubs for handler tests. Each embeds its interface so only
// the methods a test cares about need a function; calling anything else
// panics, which is exactly what we want from an unexpected query.

type stubPostRepo struct {
	repository.PostRepository
	getByID func(id uint) (*models.Post, error)
}

func (s *stubPostRepo) GetByID(id uint) (*models.Post, error) {
	return s.getByID(id)
}

type stubCategoryRepo struct {
	repository.CategoryRepository
	getPublishedBySlug func(slug string) (*models.Category, error)
}

func (s *stubCategoryRepo) GetPublishedBySlug(slug string) (*models.Category, error) {
	return s.getPublishedBySlug(slug)
}

type stubCommentRepo struct {
	repository.CommentRepository
	getByIDAndPost func(commentID, postID uint) (*models.Comment, error)
	create         func(comment *models.Comment) error
}

func (s *stubCommentRepo) GetByIDAndPost(commentID, postID uint) (*models.Comment, error) {
	return s.getByIDAndPost(commentID, postID)
}

func (s *stubCommentRepo) Create(comment *models.Comment) error {
	return s.create(comment)
}

type stubUserRepo struct {
	repository.UserRepository
	getByID           func(id uint) (*models.User, error)
	getByUsername     func(username string) (*models.User, error)
	emailTakenByOther func(email string, userID uint) (bool, error)
	update            func(user *models.User) error
}

func (s *stubUserRepo) GetByID(id uint) (*models.User, error) {
	return s.getByID(id)
}

func (s *stubUserRepo) GetByUsername(username string) (*models.User, error) {
	return s.getByUsername(username)
}

func (s *stubUserRepo) EmailTakenByOther(email string, userID uint) (bool, error) {
	return s.emailTakenByOther(email, userID)
}

func (s *stubUserRepo) Update(user *models.User) error {
	return s.update(user)
}

// signIn installs a fixed viewer identity for every request of the app,
// standing in for the session-backed user context middleware.
func signIn(app *fiber.App, viewer usercontext.UserContext) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyUserContext, viewer)
		return c.Next()
	})
}
