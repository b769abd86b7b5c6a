package v1

import (
	"fmt"

	"github.com/civicdev/civicboard/internal/auth"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// ListComments returns the comment feed as the current viewer sees it.
func ListComments(c *fiber.Ctx) error {
	viewer := auth.Viewer(c)

	views, err := Service.VisibleComments(c.Context(), viewer)
	if err != nil {
		Logger.Error(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to list comments: %v", err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, views)
}

// CreateComment publishes a comment as the current viewer. Publication never
// fails because of moderation; only a missing identity or empty content
// rejects the request.
func CreateComment(c *fiber.Ctx) error {
	type CommentInput struct {
		Content string `json:"content" validate:"required,notblank,max=2000"`
	}

	ci := new(CommentInput)
	if err := utils.StrictBodyParser(c, ci); err != nil {
		Logger.Warn(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to parse comment body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := Validator.Validate(ci); err != nil {
		Logger.Warn(c.Context()).Logs("Comment validation failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	viewer := auth.Viewer(c)
	if viewer == nil {
		return utils.SendError(c, utils.NewError(utils.ErrNotFound.Code, "No viewer identity resolved"))
	}

	created, err := Service.SubmitComment(c.Context(), viewer.ID, ci.Content)
	if err != nil {
		Logger.Warn(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to submit comment: %v", err))
		return utils.SendError(c, err)
	}

	Logger.Info(c.Context()).WithMeta(utils.Map{
		"comment_id": created.ID.String(),
		"author_id":  viewer.ID.String(),
	}).Logs("Comment published")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment published",
		"comment": fiber.Map{
			"id":         created.ID,
			"content":    created.Content,
			"author_id":  created.AuthorID,
			"created_at": created.CreatedAt,
		},
	})
}
