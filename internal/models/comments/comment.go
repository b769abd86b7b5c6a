package models

import (
	"time"

	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required,notblank,max=2000"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_author" json:"author_id" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Author  user.User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author" validate:"-"`
	Actions []ModAction `gorm:"foreignKey:CommentID" json:"actions" validate:"-"`
}

// ActiveFlags returns the flags currently in force for the comment.
func (c *Comment) ActiveFlags() []ModAction {
	return ActiveFlags(c.Actions)
}
