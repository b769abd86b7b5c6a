package v1

import (
	"fmt"

	"github.com/civicdev/civicboard/internal/auth"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SelectUser switches the viewer identity by issuing a signed session cookie.
// This is deliberately not authentication; the demo board lets anyone be
// anyone.
func SelectUser(c *fiber.Ctx) error {
	type SessionInput struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}

	si := new(SessionInput)
	if err := utils.StrictBodyParser(c, si); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := Validator.Validate(si); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	userID, err := uuid.Parse(si.UserID)
	if err != nil {
		return utils.SendError(c, utils.NewError(utils.ErrBadRequest.Code, "Invalid user id"))
	}

	u, err := Users.UserByID(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	token, err := auth.GenerateToken(JWTSecret, u.ID)
	if err != nil {
		Logger.Error(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to sign session token: %v", err))
		return utils.SendError(c, utils.ErrInternalServerError)
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return utils.Success(c).WithData(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
	}).Send()
}
