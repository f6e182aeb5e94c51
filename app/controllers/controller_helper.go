package controllers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/mishatunikov/blogicum/internal/pkg/authz"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// currentViewer converts the request's user context into the identity the
// authorization gate works with.
func currentViewer(c *fiber.Ctx) authz.Viewer {
	userCtx := usercontext.GetUserContext(c)
	return authz.Viewer{
		UserID:        userCtx.UserID,
		Username:      userCtx.Username,
		Authenticated: userCtx.IsLoggedIn,
	}
}

// csrfToken returns the token set by the csrf middleware, or empty for
// routes outside the protected group.
func csrfToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("csrf").(string); ok {
		return token
	}
	return ""
}

func renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":  "Page not found",
		"Viewer": usercontext.GetUserContext(c),
	}, "layouts/main")
}

func renderForbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).Render("errors/403", fiber.Map{
		"Title":  "Forbidden",
		"Viewer": usercontext.GetUserContext(c),
	}, "layouts/main")
}

func renderServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":  "Server error",
		"Viewer": usercontext.GetUserContext(c),
	}, "layouts/main")
}

// pubDateLayouts covers the datetime-local input format and its
// space-separated variant.
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04"}

func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid publication date %q", value)
}

// parseOptionalID parses a select value that may be left empty.
func parseOptionalID(value string) (*uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid id %q", value)
	}
	u := uint(id)
	return &u, nil
}

// savePostImage stores an uploaded post image under a generated filename
// and returns its public path.
func savePostImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join("uploads", "posts", name)); err != nil {
		return "", err
	}
	return "/uploads/posts/" + name, nil
}

func flashError(c *fiber.Ctx, message string) *fiber.Ctx {
	return flash.WithError(c, fiber.Map{
		"type":    "error",
		"message": message,
	})
}

func flashSuccess(c *fiber.Ctx, message string) *fiber.Ctx {
	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": message,
	})
}
