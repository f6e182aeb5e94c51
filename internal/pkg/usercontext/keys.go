package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	KeyUserContext = "USER_CONTEXT"
	KeyAuth        = "authenticated"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
)
