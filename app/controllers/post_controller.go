package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/app/repository"
	"github.com/mishatunikov/blogicum/internal/pkg/authz"
	"github.com/mishatunikov/blogicum/internal/pkg/statistics"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// applyPostForm copies the submitted form fields onto a post. The author is
// never taken from the form. Returns a user-facing message on invalid input.
func applyPostForm(c *fiber.Ctx, repos *repository.Repositories, post *models.Post) string {
	post.Title = c.FormValue("title")
	post.Text = c.FormValue("text")

	pubDate, err := parsePubDate(c.FormValue("pub_date"))
	if err != nil {
		return "Please provide a valid publication date."
	}
	post.PubDate = pubDate

	categoryID, err := parseOptionalID(c.FormValue("category_id"))
	if err != nil || categoryID == nil {
		return "Please choose a category."
	}
	if _, err = repos.Category.GetByID(*categoryID); err != nil {
		return "Please choose a category."
	}
	post.CategoryID = categoryID

	locationID, err := parseOptionalID(c.FormValue("location_id"))
	if err != nil {
		return "Please choose a valid location."
	}
	if locationID != nil {
		if _, err = repos.Location.GetByID(*locationID); err != nil {
			return "Please choose a valid location."
		}
	}
	post.LocationID = locationID

	if err = post.Validate(); err != nil {
		return fmt.Sprintf("Invalid post: %s", err)
	}

	// The upload is stored only after the rest of the form validates
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := savePostImage(c, file)
		if err != nil {
			return "Could not store the uploaded image."
		}
		post.ImagePath = path
	}

	return ""
}

func renderPostForm(c *fiber.Ctx, repos *repository.Repositories, title string, post *models.Post) error {
	categories, err := repos.Category.ListPublished()
	if err != nil {
		return renderServerError(c)
	}
	locations, err := repos.Location.ListPublished()
	if err != nil {
		return renderServerError(c)
	}

	return c.Render("post_form", fiber.Map{
		"Title":      title,
		"Viewer":     usercontext.GetUserContext(c),
		"Flash":      flash.Get(c),
		"Post":       post,
		"Categories": categories,
		"Locations":  locations,
		"CSRFToken":  csrfToken(c),
	}, "layouts/main")
}

// HandlePostCreate renders the post form and creates the post on submit.
// The author is the session user, regardless of what the form carries.
func HandlePostCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	userCtx := usercontext.GetUserContext(c)

	if c.Method() == fiber.MethodPost {
		post := models.Post{
			AuthorID:    userCtx.UserID,
			Publication: models.Publication{IsPublished: true},
		}

		if msg := applyPostForm(c, repos, &post); msg != "" {
			return flashError(c, msg).Redirect("/posts/create")
		}

		if err := repos.Post.Create(&post); err != nil {
			return flashError(c, "Could not save the post.").Redirect("/posts/create")
		}

		go statistics.UpdateStatisticsCache()

		return flashSuccess(c, "Post created.").Redirect("/profile/" + userCtx.Username)
	}

	return renderPostForm(c, repos, "New post", &models.Post{})
}

// resolvePostForMutation loads the post for an edit/delete and runs the
// authorization gate. The returned handled response is non-nil when the
// gate already produced one (404, login redirect, or the soft redirect to
// the detail page a non-author gets).
func resolvePostForMutation(c *fiber.Ctx) (*models.Post, error, bool) {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return nil, renderNotFound(c), true
	}

	repos := repository.GetGlobalRepositories()
	post, err := repos.Post.GetByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, renderNotFound(c), true
		}
		return nil, renderServerError(c), true
	}

	switch authz.AuthorizeMutation(currentViewer(c), post) {
	case authz.DeniedUnauthenticated:
		return nil, c.Redirect("/login", fiber.StatusSeeOther), true
	case authz.DeniedNotOwner:
		return nil, c.Redirect(fmt.Sprintf("/posts/%d", post.ID), fiber.StatusSeeOther), true
	}

	return post, nil, false
}

// HandlePostEdit lets the author change everything but the authorship
func HandlePostEdit(c *fiber.Ctx) error {
	post, resp, handled := resolvePostForMutation(c)
	if handled {
		return resp
	}

	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		if msg := applyPostForm(c, repos, post); msg != "" {
			return flashError(c, msg).Redirect(fmt.Sprintf("/posts/%d/edit", post.ID))
		}

		if err := repos.Post.Update(post); err != nil {
			return flashError(c, "Could not save the post.").Redirect(fmt.Sprintf("/posts/%d/edit", post.ID))
		}

		return flashSuccess(c, "Post updated.").Redirect(fmt.Sprintf("/posts/%d", post.ID))
	}

	return renderPostForm(c, repos, "Edit post", post)
}

// HandlePostDelete removes the author's post together with its comments
func HandlePostDelete(c *fiber.Ctx) error {
	post, resp, handled := resolvePostForMutation(c)
	if handled {
		return resp
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Post.Delete(post.ID); err != nil {
		return flashError(c, "Could not delete the post.").Redirect(fmt.Sprintf("/posts/%d", post.ID))
	}

	go statistics.UpdateStatisticsCache()

	return flashSuccess(c, "Post deleted.").Redirect("/profile/" + usercontext.GetUsername(c))
}
