package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/pagination"
	"github.com/mishatunikov/blogicum/internal/pkg/statistics"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// HandleIndex renders the paginated list of publicly visible posts
func HandleIndex(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	total, err := repos.Post.CountPublished()
	if err != nil {
		return renderServerError(c)
	}

	page := pagination.New(total, pagination.DefaultPerPage, c.QueryInt("page", 1))
	posts, err := repos.Post.ListPublished(page.Offset(), page.Limit())
	if err != nil {
		return renderServerError(c)
	}

	return c.Render("index", fiber.Map{
		"Title":  "Latest posts",
		"Viewer": usercontext.GetUserContext(c),
		"Flash":  flash.Get(c),
		"Posts":  posts,
		"Page":   page,
		"Stats":  statistics.GetStatistics(),
	}, "layouts/main")
}

// HandleCategory renders one category's visible posts. Unknown and hidden
// categories both 404, for everyone.
func HandleCategory(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	category, err := repos.Category.GetPublishedBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	total, err := repos.Post.CountByCategory(category.ID)
	if err != nil {
		return renderServerError(c)
	}

	page := pagination.New(total, pagination.DefaultPerPage, c.QueryInt("page", 1))
	posts, err := repos.Post.ListByCategory(category.ID, page.Offset(), page.Limit())
	if err != nil {
		return renderServerError(c)
	}

	return c.Render("category", fiber.Map{
		"Title":    category.Title,
		"Viewer":   usercontext.GetUserContext(c),
		"Flash":    flash.Get(c),
		"Category": category,
		"Posts":    posts,
		"Page":     page,
	}, "layouts/main")
}

// HandlePostDetail renders a single post with its comments. A hidden post
// is only shown to its author; for anyone else the response is the same
// 404 an unknown id produces.
func HandlePostDetail(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return renderNotFound(c)
	}

	repos := repository.GetGlobalRepositories()
	post, err := repos.Post.GetByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	userCtx := usercontext.GetUserContext(c)
	if !post.VisibleAt(time.Now()) && post.AuthorID != userCtx.UserID {
		return renderNotFound(c)
	}

	comments, err := repos.Comment.ListByPost(post.ID)
	if err != nil {
		return renderServerError(c)
	}

	return c.Render("detail", fiber.Map{
		"Title":     post.Title,
		"Viewer":    userCtx,
		"Flash":     flash.Get(c),
		"Post":      post,
		"Comments":  comments,
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}
