package auth

import (
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// Options carries the middleware dependencies.
type Options struct {
	Users  *user.Store
	Secret string
	Logger *logger.Logger
}

// SessionMiddleware resolves the viewer identity from the session cookie.
// An absent, expired, or unknown identity falls back to the default demo
// viewer; the board has no login, only identity selection.
func SessionMiddleware(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var viewer *user.User

		if cookie := c.Cookies(SessionCookie); cookie != "" {
			if id, err := VerifyToken(opt.Secret, cookie); err == nil {
				if u, err := opt.Users.UserByID(c.Context(), id); err == nil {
					viewer = u
				}
			} else {
				opt.Logger.Debug(c.Context()).WithMeta(map[string]string{"error": err.Error()}).Logs("Invalid session cookie, falling back to default viewer")
			}
		}

		if viewer == nil {
			if u, err := opt.Users.DefaultViewer(c.Context()); err == nil {
				viewer = u
			}
		}

		if viewer != nil {
			c.Locals("viewer", viewer)
			c.Locals("user_id", viewer.ID.String())
		}

		ctx := logger.SetupRoutesContext(c)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Viewer returns the resolved identity for the request, or nil.
func Viewer(c *fiber.Ctx) *user.User {
	if u, ok := c.Locals("viewer").(*user.User); ok {
		return u
	}
	return nil
}
