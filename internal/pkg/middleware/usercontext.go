package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mishatunikov/blogicum/internal/pkg/session"
	"github.com/mishatunikov/blogicum/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a viewer identity for
// every request and stores it in Locals, so controllers never touch the
// session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
	})

	return c.Next()
}
