package controllers

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

func newProfileEditApp(users *stubUserRepo) *fiber.App {
	repository.SetGlobalRepositories(&repository.Repositories{User: users})

	app := fiber.New()
	signIn(app, usercontext.UserContext{UserID: 1, Username: "alice", IsLoggedIn: true})
	app.Post("/profile/edit", HandleProfileEdit)
	return app
}

func alice() *models.User {
	return &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$10$notactuallycheckedhere",
	}
}

func TestHandleProfileEditRejectsEmailOfAnotherUser(t *testing.T) {
	app := newProfileEditApp(&stubUserRepo{
		getByID: func(id uint) (*models.User, error) { return alice(), nil },
		emailTakenByOther: func(email string, userID uint) (bool, error) {
			return email == "bob@example.com" && userID == 1, nil
		},
		update: func(user *models.User) error {
			t.Error("profile must not be saved with a taken email")
			return nil
		},
	})

	req := postForm("/profile/edit", url.Values{
		"username": {"alice"},
		"email":    {"bob@example.com"},
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/edit", resp.Header.Get("Location"))
}

func TestHandleProfileEditKeepingOwnEmailSaves(t *testing.T) {
	// Resubmitting your current email must never read as a duplicate;
	// the uniqueness check excludes the user being edited.
	var saved *models.User
	app := newProfileEditApp(&stubUserRepo{
		getByID: func(id uint) (*models.User, error) { return alice(), nil },
		emailTakenByOther: func(email string, userID uint) (bool, error) {
			assert.Equal(t, uint(1), userID)
			return false, nil
		},
		update: func(user *models.User) error {
			saved = user
			return nil
		},
	})

	req := postForm("/profile/edit", url.Values{
		"username":   {"alice"},
		"email":      {"alice@example.com"},
		"first_name": {"Alice"},
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get("Location"))

	require.NotNil(t, saved)
	assert.Equal(t, "alice@example.com", saved.Email)
	assert.Equal(t, "Alice", saved.FirstName)
}
