package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

func newViewTestApp() *fiber.App {
	engine := html.New("../../views", ".html")
	return fiber.New(fiber.Config{Views: engine})
}

func TestHandleCommentCreateGetRedirectsToDetail(t *testing.T) {
	// The comment route serves POST only; manually opening the URL lands
	// back on the post detail page before any session or database access.
	app := fiber.New()
	app.All("/posts/:id/comment", HandleCommentCreate)

	req := httptest.NewRequest(http.MethodGet, "/posts/7/comment", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/posts/7", resp.Header.Get("Location"))
}

func TestHandleCommentCreateBadPostID(t *testing.T) {
	app := newViewTestApp()
	app.All("/posts/:id/comment", HandleCommentCreate)

	req := httptest.NewRequest(http.MethodGet, "/posts/abc/comment", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCommentCreateAnonymousPostRedirectsToLogin(t *testing.T) {
	// A real submission without a session is asked to log in. Only GET
	// gets the softer bounce back to the detail page.
	app := fiber.New()
	app.All("/posts/:id/comment", HandleCommentCreate)

	req := postForm("/posts/7/comment", url.Values{"text": {"hi"}})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHandleCommentCreateOnHiddenPost(t *testing.T) {
	// Commenting does not re-check the post's visibility. A signed-in
	// user who knows a draft's id can still comment on it.
	var created *models.Comment
	repository.SetGlobalRepositories(&repository.Repositories{
		Post: &stubPostRepo{getByID: func(id uint) (*models.Post, error) {
			return &models.Post{
				ID:       id,
				AuthorID: 9,
				PubDate:  time.Now().Add(-time.Hour),
			}, nil
		}},
		Comment: &stubCommentRepo{create: func(comment *models.Comment) error {
			created = comment
			return nil
		}},
	})

	app := fiber.New()
	signIn(app, usercontext.UserContext{UserID: 3, Username: "bob", IsLoggedIn: true})
	app.All("/posts/:id/comment", HandleCommentCreate)

	req := postForm("/posts/5/comment", url.Values{"text": {"nice draft"}})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/posts/5", resp.Header.Get("Location"))

	require.NotNil(t, created)
	assert.Equal(t, uint(3), created.AuthorID)
	assert.Equal(t, uint(5), created.PostID)
	assert.Equal(t, "nice draft", created.Text)
}

func TestHandleCommentEditWrongPostInURLIsNotFound(t *testing.T) {
	// Comment 5 belongs to post 7. Reaching it through post 8 is a 404
	// even for the comment's own author; the pair has to match before
	// ownership is ever looked at.
	repository.SetGlobalRepositories(&repository.Repositories{
		Comment: &stubCommentRepo{getByIDAndPost: func(commentID, postID uint) (*models.Comment, error) {
			if commentID == 5 && postID == 7 {
				return &models.Comment{ID: 5, PostID: 7, AuthorID: 1, Text: "mine"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}},
	})

	app := newViewTestApp()
	signIn(app, usercontext.UserContext{UserID: 1, Username: "alice", IsLoggedIn: true})
	app.Get("/posts/:post_id/edit_comment/:comment_id", HandleCommentEdit)

	req := httptest.NewRequest(http.MethodGet, "/posts/8/edit_comment/5", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCommentEditByNonAuthorForbidden(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		Comment: &stubCommentRepo{getByIDAndPost: func(commentID, postID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, PostID: postID, AuthorID: 2, Text: "not yours"}, nil
		}},
	})

	app := newViewTestApp()
	signIn(app, usercontext.UserContext{UserID: 1, Username: "alice", IsLoggedIn: true})
	app.Get("/posts/:post_id/edit_comment/:comment_id", HandleCommentEdit)

	req := httptest.NewRequest(http.MethodGet, "/posts/7/edit_comment/5", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}
