package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/session"
	"github.com/mishatunikov/blogicum/internal/pkg/statistics"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		repos := repository.GetGlobalRepositories()

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		user, err := repos.User.GetByUsername(c.FormValue("username"))
		if err != nil {
			return flashError(c, "There is a problem with the login process").Redirect("/login")
		}

		if !user.CheckPassword(c.FormValue("password")) {
			return flashError(c, "There is a problem with the login process").Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/login")
		}

		sess.Set(usercontext.KeyAuth, true)
		sess.Set(usercontext.KeyUserID, user.ID)
		sess.Set(usercontext.KeyUsername, user.Username)

		if err = sess.Save(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/login")
		}

		return flashSuccess(c, "Welcome back!").Redirect("/")
	}

	return c.Render("auth/login", fiber.Map{
		"Title":     "Sign in",
		"Viewer":    usercontext.GetUserContext(c),
		"Flash":     flash.Get(c),
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flashError(c, "logged out (no sess)").Redirect("/login")
	}

	if err = sess.Destroy(); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/login")
	}

	return flashSuccess(c, "You have been signed out.").Redirect("/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		repos := repository.GetGlobalRepositories()

		username := c.FormValue("username")
		email := c.FormValue("email")

		if _, err := repos.User.GetByUsername(username); err == nil {
			return flashError(c, "This username is already taken.").Redirect("/register")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/register")
		}

		taken, err := repos.User.EmailTakenByOther(email, 0)
		if err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/register")
		}
		if taken {
			return flashError(c, "This email address is already in use.").Redirect("/register")
		}

		user, err := models.CreateUser(username, email, c.FormValue("password"))
		if err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/register")
		}
		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")

		if err = repos.User.Create(user); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err)).Redirect("/register")
		}

		// Update statistics after registration
		go statistics.UpdateStatisticsCache()

		return flashSuccess(c, "Registration complete, you can sign in now!").Redirect("/login")
	}

	return c.Render("auth/register", fiber.Map{
		"Title":     "Registration",
		"Viewer":    usercontext.GetUserContext(c),
		"Flash":     flash.Get(c),
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}
