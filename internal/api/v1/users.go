package v1

import (
	"fmt"

	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// ListUsers returns the selectable board identities for the user switcher.
func ListUsers(c *fiber.Ctx) error {
	users, err := Users.ListUsers(c.Context())
	if err != nil {
		Logger.Error(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to list users: %v", err))
		return utils.SendError(c, err)
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		})
	}

	return utils.SendSuccess(c, out)
}
