package moderation

import (
	"testing"

	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisible(t *testing.T) {
	author := &user.User{ID: uuid.New(), Username: "author", Role: user.RoleUser}
	other := &user.User{ID: uuid.New(), Username: "other", Role: user.RoleUser}
	admin := &user.User{ID: uuid.New(), Username: "admin", Role: user.RoleAdmin}

	comment := &comments.Comment{ID: uuid.New(), AuthorID: author.ID, Content: "hello"}
	flag := []comments.ModAction{{Type: comments.ActionFlag, CommentID: comment.ID}}

	tests := []struct {
		name   string
		flags  []comments.ModAction
		viewer *user.User
		want   bool
	}{
		{"unflagged, author", nil, author, true},
		{"unflagged, other user", nil, other, true},
		{"unflagged, admin", nil, admin, true},
		{"unflagged, anonymous", nil, nil, true},
		{"flagged, author still sees it", flag, author, true},
		{"flagged, hidden from other user", flag, other, false},
		{"flagged, admin sees it", flag, admin, true},
		{"flagged, hidden from anonymous", flag, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(comment, tt.flags, tt.viewer))
		})
	}
}

func TestVisibleAfterUnflag(t *testing.T) {
	author := &user.User{ID: uuid.New(), Role: user.RoleUser}
	other := &user.User{ID: uuid.New(), Role: user.RoleUser}
	comment := &comments.Comment{ID: uuid.New(), AuthorID: author.ID}

	// An empty active-flag set is exactly what an unflag produces.
	assert.True(t, Visible(comment, nil, other))
	assert.True(t, Visible(comment, []comments.ModAction{}, other))
}
