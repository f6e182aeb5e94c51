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
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// HandleCommentCreate adds a comment to a post. The route only serves POST;
// a GET lands back on the post detail page, even for anonymous visitors, so
// the login redirect only ever comes from an actual submission. Author and
// post come from the session and the URL, never from form fields. Post
// visibility is not re-checked here, matching the long-standing behavior of
// the product.
func HandleCommentCreate(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return renderNotFound(c)
	}

	if c.Method() != fiber.MethodPost {
		return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusSeeOther)
	}

	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	repos := repository.GetGlobalRepositories()
	post, err := repos.Post.GetByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderNotFound(c)
		}
		return renderServerError(c)
	}

	comment := models.Comment{
		Text:     c.FormValue("text"),
		AuthorID: usercontext.GetUserID(c),
		PostID:   post.ID,
	}

	if err = comment.Validate(); err != nil {
		return flashError(c, "A comment needs some text.").Redirect(fmt.Sprintf("/posts/%d", post.ID))
	}

	if err = repos.Comment.Create(&comment); err != nil {
		return flashError(c, "Could not save the comment.").Redirect(fmt.Sprintf("/posts/%d", post.ID))
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", post.ID), fiber.StatusSeeOther)
}

// resolveCommentForMutation runs the ordered gate for comment edits and
// deletes: the (comment id, post id) pair must resolve before ownership is
// even considered, so a wrong post id in the URL reads as 404 whether or
// not the comment exists.
func resolveCommentForMutation(c *fiber.Ctx) (*models.Comment, error, bool) {
	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return nil, renderNotFound(c), true
	}
	commentID, err := c.ParamsInt("comment_id")
	if err != nil || commentID < 1 {
		return nil, renderNotFound(c), true
	}

	repos := repository.GetGlobalRepositories()
	comment, err := repos.Comment.GetByIDAndPost(uint(commentID), uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, renderNotFound(c), true
		}
		return nil, renderServerError(c), true
	}

	switch authz.AuthorizeMutation(currentViewer(c), comment) {
	case authz.DeniedUnauthenticated:
		return nil, c.Redirect("/login", fiber.StatusSeeOther), true
	case authz.DeniedNotOwner:
		return nil, renderForbidden(c), true
	}

	return comment, nil, false
}

// HandleCommentEdit lets the comment's author change its text
func HandleCommentEdit(c *fiber.Ctx) error {
	comment, resp, handled := resolveCommentForMutation(c)
	if handled {
		return resp
	}

	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		comment.Text = c.FormValue("text")
		if err := comment.Validate(); err != nil {
			return flashError(c, "A comment needs some text.").
				Redirect(fmt.Sprintf("/posts/%d/edit_comment/%d", comment.PostID, comment.ID))
		}

		if err := repos.Comment.Update(comment); err != nil {
			return flashError(c, "Could not save the comment.").
				Redirect(fmt.Sprintf("/posts/%d/edit_comment/%d", comment.PostID, comment.ID))
		}

		return c.Redirect(fmt.Sprintf("/posts/%d", comment.PostID), fiber.StatusSeeOther)
	}

	return c.Render("comment_form", fiber.Map{
		"Title":     "Edit comment",
		"Viewer":    usercontext.GetUserContext(c),
		"Flash":     flash.Get(c),
		"Comment":   comment,
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}

// HandleCommentDelete removes the comment after the same gate as edits
func HandleCommentDelete(c *fiber.Ctx) error {
	comment, resp, handled := resolveCommentForMutation(c)
	if handled {
		return resp
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Comment.Delete(comment.ID); err != nil {
		return flashError(c, "Could not delete the comment.").
			Redirect(fmt.Sprintf("/posts/%d", comment.PostID))
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", comment.PostID), fiber.StatusSeeOther)
}
