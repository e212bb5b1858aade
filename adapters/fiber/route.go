// Package fiber mounts the authentication operations on a Fiber v3 app.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lindenweb/authkit/core"
	"github.com/lindenweb/authkit/pkg/logging"
)

// DefaultBasePath is where RegisterRoutes mounts when given an empty path.
const DefaultBasePath = "/api/auth"

type Adapter struct {
	app    *fiber.App
	auth   *core.SessionManager
	logger logging.Logger
}

func New(app *fiber.App, auth *core.SessionManager, logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Adapter{app: app, auth: auth, logger: logger}
}

func (a *Adapter) RegisterRoutes(basePath string) {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	api := a.app.Group(basePath)

	// Public routes
	api.Post("/sign-up", a.signUp)
	api.Post("/sign-in", a.signIn)
	api.Post("/sign-out", a.signOut)
	api.Get("/session", a.session)

	// Protected routes
	api.Patch("/account", a.RequireAuth, a.updateProfile)
	api.Delete("/account", a.RequireAuth, a.deleteAccount)
}
