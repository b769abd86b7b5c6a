package models

import (
	"time"

	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/google/uuid"
)

// Moderation action types. The log is append-only: unflagging records an UNFLAG
// action instead of deleting FLAG rows, which keeps a full audit trail.
const (
	ActionFlag   = "FLAG"
	ActionUnflag = "UNFLAG"
)

type ModAction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Type      string    `gorm:"size:10;not null" json:"type" validate:"required,oneof=FLAG UNFLAG"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_action_comment" json:"comment_id" validate:"required"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_action_actor" json:"actor_id" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actor   user.User `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"actor" validate:"-"`
	Comment *Comment  `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

// ActiveFlags filters an action log down to the flags currently in force: FLAG
// actions strictly newer than the latest UNFLAG. One UNFLAG reverses every FLAG
// recorded before it, so a single unflag click always clears the comment no
// matter how many moderators flagged it.
func ActiveFlags(actions []ModAction) []ModAction {
	var lastUnflag time.Time
	for _, a := range actions {
		if a.Type == ActionUnflag && a.CreatedAt.After(lastUnflag) {
			lastUnflag = a.CreatedAt
		}
	}

	var active []ModAction
	for _, a := range actions {
		if a.Type == ActionFlag && a.CreatedAt.After(lastUnflag) {
			active = append(active, a)
		}
	}
	return active
}
