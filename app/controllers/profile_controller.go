package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/pagination"
	"github.com/mishatunikov/blogicum/internal/pkg/session"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// HandleProfile renders a user's page with their posts. The owner sees all
// of their posts, drafts and future-dated ones included; everyone else only
// sees what is publicly visible.
func HandleProfile(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	userCtx := usercontext.GetUserContext(c)
	includeHidden := userCtx.IsLoggedIn && userCtx.UserID == user.ID

	total, err := repos.Post.CountByAuthor(user.ID, includeHidden)
	if err != nil {
		return renderServerError(c)
	}

	page := pagination.New(total, pagination.DefaultPerPage, c.QueryInt("page", 1))
	posts, err := repos.Post.ListByAuthor(user.ID, includeHidden, page.Offset(), page.Limit())
	if err != nil {
		return renderServerError(c)
	}

	return c.Render("profile", fiber.Map{
		"Title":   user.Username,
		"Viewer":  userCtx,
		"Flash":   flash.Get(c),
		"Profile": user,
		"IsOwner": includeHidden,
		"Posts":   posts,
		"Page":    page,
	}, "layouts/main")
}

// HandleProfileEdit lets the signed-in user change their profile fields.
// An email held by any other user is rejected; saving your own current
// email is always fine.
func HandleProfileEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	userCtx := usercontext.GetUserContext(c)

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return renderServerError(c)
	}

	if c.Method() == fiber.MethodPost {
		username := c.FormValue("username")
		email := c.FormValue("email")

		if username != user.Username {
			if _, err = repos.User.GetByUsername(username); err == nil {
				return flashError(c, "This username is already taken.").Redirect("/profile/edit")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return renderServerError(c)
			}
		}

		taken, err := repos.User.EmailTakenByOther(email, user.ID)
		if err != nil {
			return renderServerError(c)
		}
		if taken {
			return flashError(c, "This email address is already in use.").Redirect("/profile/edit")
		}

		user.Username = username
		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")
		user.Email = email

		if err = user.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("Invalid profile: %s", err)).Redirect("/profile/edit")
		}

		if err = repos.User.Update(user); err != nil {
			return flashError(c, "Could not save the profile.").Redirect("/profile/edit")
		}

		// Keep the session's display name in sync with the new username
		_ = session.SetSessionValue(c, usercontext.KeyUsername, user.Username)

		return flashSuccess(c, "Profile updated.").Redirect("/profile/" + user.Username)
	}

	return c.Render("profile_form", fiber.Map{
		"Title":     "Edit profile",
		"Viewer":    userCtx,
		"Flash":     flash.Get(c),
		"User":      user,
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}
