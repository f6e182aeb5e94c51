package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
)

func TestHandlePostDetailHiddenAndUnknownLookAlike(t *testing.T) {
	// For a stranger, a draft and a post that never existed must produce
	// the same response, so the id space leaks nothing.
	repository.SetGlobalRepositories(&repository.Repositories{
		Post: &stubPostRepo{getByID: func(id uint) (*models.Post, error) {
			if id == 1 {
				return &models.Post{
					ID:       1,
					Title:    "draft",
					AuthorID: 9,
					PubDate:  time.Now().Add(-time.Hour),
				}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}},
	})

	app := newViewTestApp()
	app.Get("/posts/:id", HandlePostDetail)

	hidden := fetch(t, app, "/posts/1")
	unknown := fetch(t, app, "/posts/2")

	assert.Equal(t, fiber.StatusNotFound, hidden.status)
	assert.Equal(t, fiber.StatusNotFound, unknown.status)
	assert.Equal(t, unknown.body, hidden.body)
}

func TestHandleCategoryHiddenOrUnknownSlugIsNotFound(t *testing.T) {
	// The repository resolves only published categories, so a slug that
	// was unpublished and a slug that never existed read the same.
	repository.SetGlobalRepositories(&repository.Repositories{
		Category: &stubCategoryRepo{getPublishedBySlug: func(slug string) (*models.Category, error) {
			return nil, gorm.ErrRecordNotFound
		}},
	})

	app := newViewTestApp()
	app.Get("/category/:slug", HandleCategory)

	for _, slug := range []string{"unpublished-stories", "no-such-slug"} {
		resp := fetch(t, app, "/category/"+slug)
		assert.Equal(t, fiber.StatusNotFound, resp.status, slug)
	}
}

type fetched struct {
	status int
	body   string
}

func fetch(t *testing.T, app *fiber.App, target string) fetched {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return fetched{status: resp.StatusCode, body: string(body)}
}
