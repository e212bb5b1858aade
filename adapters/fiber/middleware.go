package fiber

import (
	"github.com/gofiber/fiber/v3"
)

// RequireAuth validates the session token on the request and stores the
// resolved user in the context for downstream handlers. Requests without a
// valid session are rejected before the handler runs.
func (a *Adapter) RequireAuth(c fiber.Ctx) error {
	result, err := a.auth.Resume(c.Context(), a.extractToken(c))
	if err != nil {
		return a.handleAuthError(c, sessionError(err))
	}

	if result.Refreshed {
		setCookie(c, result.Cookie)
	}

	c.Locals("user", result.User)
	return c.Next()
}
