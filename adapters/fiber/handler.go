package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lindenweb/authkit/core"
)

func (a *Adapter) signUp(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.auth.Register(c.Context(), input)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	setCookie(c, result.Cookie)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": result.User})
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var input core.LoginInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.auth.Login(c.Context(), input)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	setCookie(c, result.Cookie)
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": result.User})
}

// signOut clears the session cookie. Tokens are stateless, so there is no
// server-side session to destroy; the client simply loses its copy.
func (a *Adapter) signOut(c fiber.Ctx) error {
	setCookie(c, a.auth.ClearCookie())
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) session(c fiber.Ctx) error {
	result, err := a.auth.Resume(c.Context(), a.extractToken(c))
	if err != nil {
		return a.handleAuthError(c, sessionError(err))
	}

	if result.Refreshed {
		setCookie(c, result.Cookie)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": result.User})
}

func (a *Adapter) updateProfile(c fiber.Ctx) error {
	user := c.Locals("user").(*core.User)

	var input core.UpdateProfileInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	input.ID = user.ID

	updated, err := a.auth.UpdateProfile(c.Context(), input)
	if err != nil {
		return a.handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": updated})
}

func (a *Adapter) deleteAccount(c fiber.Ctx) error {
	user := c.Locals("user").(*core.User)

	deleted, err := a.auth.DeleteAccount(c.Context(), user.ID)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	setCookie(c, a.auth.ClearCookie())
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": deleted})
}

// extractToken extracts the session token from the request.
// Checks Authorization header (Bearer token) first, then falls back to the
// cookie name the session manager is configured with, so custom cookie names
// are read under the same name they are set.
func (a *Adapter) extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(a.auth.CookieName())
}

// sessionError normalizes resume failures for the HTTP surface. A token whose
// account no longer exists is no session at all; reporting 404 here would
// tell a token holder whether the account still exists.
func sessionError(err error) error {
	if errors.Is(err, core.ErrUserNotFound) {
		return core.ErrInvalidSession
	}
	return err
}

func setCookie(c fiber.Ctx, cookie *core.SessionCookie) {
	if cookie == nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Path:     cookie.Path,
		MaxAge:   cookie.MaxAge,
		Secure:   cookie.Secure,
		HTTPOnly: cookie.HTTPOnly,
		SameSite: cookie.SameSite,
	})
}

// handleAuthError maps auth errors to HTTP responses
func (a *Adapter) handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error(c.Context(), "auth request failed", "path", c.Path(), "error", err)
		// Internal detail stays in the logs.
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// mapErrorToStatus maps the error taxonomy to HTTP status codes
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrNoSession),
		errors.Is(err, core.ErrInvalidSession),
		errors.Is(err, core.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrStoreUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
