package v1

import (
	"fmt"

	"github.com/civicdev/civicboard/internal/auth"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FlagComment records a manual flag by the current viewer. Moderators only.
func FlagComment(c *fiber.Ctx) error {
	viewer := auth.Viewer(c)
	if !viewer.IsAdmin() {
		return utils.SendError(c, utils.NewError(utils.ErrForbidden.Code, "Moderator role required"))
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, utils.NewError(utils.ErrBadRequest.Code, "Invalid comment id"))
	}

	if err := Service.Flag(c.Context(), commentID, viewer); err != nil {
		Logger.Warn(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Flag failed: %v", err))
		return utils.SendError(c, err)
	}

	Logger.Info(c.Context()).WithMeta(utils.Map{
		"comment_id": commentID.String(),
		"actor_id":   viewer.ID.String(),
	}).Logs("Comment flagged")

	return utils.Success(c).WithMessage("Comment flagged").Send()
}

// UnflagComment reverses the active flags on a comment. Idempotent: unflagging
// an unflagged comment succeeds without recording anything.
func UnflagComment(c *fiber.Ctx) error {
	viewer := auth.Viewer(c)
	if !viewer.IsAdmin() {
		return utils.SendError(c, utils.NewError(utils.ErrForbidden.Code, "Moderator role required"))
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, utils.NewError(utils.ErrBadRequest.Code, "Invalid comment id"))
	}

	if err := Service.Unflag(c.Context(), commentID, viewer); err != nil {
		Logger.Warn(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Unflag failed: %v", err))
		return utils.SendError(c, err)
	}

	Logger.Info(c.Context()).WithMeta(utils.Map{
		"comment_id": commentID.String(),
		"actor_id":   viewer.ID.String(),
	}).Logs("Comment unflagged")

	return utils.Success(c).WithMessage("Comment unflagged").Send()
}

// Moderate runs content past the classifier without persisting anything. Used
// by the moderation test page to poke the model directly.
func Moderate(c *fiber.Ctx) error {
	type ModerateInput struct {
		Content string `json:"content" validate:"max=2000"`
	}

	mi := new(ModerateInput)
	if err := utils.StrictBodyParser(c, mi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	verdict := Service.DryRun(c.Context(), mi.Content)
	return c.Status(fiber.StatusOK).JSON(verdict)
}
