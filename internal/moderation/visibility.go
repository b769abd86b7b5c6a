package moderation

import (
	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
)

// Visible decides whether a viewer may see a comment. Pure function.
//
// Admins see everything. A comment with an active flag disappears for everyone
// except its author, who keeps seeing it with no indication anything happened.
// That absence of signal is the point of the shadow ban.
func Visible(c *comments.Comment, activeFlags []comments.ModAction, viewer *user.User) bool {
	if viewer.IsAdmin() {
		return true
	}
	if len(activeFlags) > 0 {
		return viewer != nil && viewer.ID == c.AuthorID
	}
	return true
}
