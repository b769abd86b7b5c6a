package moderation

import (
	"context"
	"strings"
	"time"

	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/google/uuid"
)

// UserDirectory resolves board identities.
type UserDirectory interface {
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	SystemModerator(ctx context.Context) (*user.User, error)
}

// CommentStore persists and lists comments with their action logs.
type CommentStore interface {
	CreateComment(ctx context.Context, authorID uuid.UUID, content string) (*comments.Comment, error)
	CommentByID(ctx context.Context, id uuid.UUID) (*comments.Comment, error)
	ListComments(ctx context.Context) ([]comments.Comment, error)
}

// ActionLog records and queries moderation actions.
type ActionLog interface {
	CreateAction(ctx context.Context, commentID, actorID uuid.UUID, kind string) (*comments.ModAction, error)
	ActiveFlagsFor(ctx context.Context, commentID uuid.UUID) ([]comments.ModAction, error)
}

// Classifier produces a moderation verdict for comment content.
type Classifier interface {
	Evaluate(ctx context.Context, content string) Verdict
}

// Service orchestrates comment submission, auto-moderation, manual moderator
// actions, and per-viewer visibility.
type Service struct {
	Users      UserDirectory
	Comments   CommentStore
	Actions    ActionLog
	Classifier Classifier
	Logger     *logger.Logger
}

func NewService(users UserDirectory, store CommentStore, actions ActionLog, classifier Classifier, log *logger.Logger) *Service {
	return &Service{
		Users:      users,
		Comments:   store,
		Actions:    actions,
		Classifier: classifier,
		Logger:     log,
	}
}

// SubmitComment publishes a comment and then runs it past the classifier.
// Publication is unconditional once the author checks out; a flagged verdict
// appends a FLAG action attributed to the system moderator. Moderation
// failures of any kind are swallowed — they must never unpublish or reject
// the already-committed comment.
func (s *Service) SubmitComment(ctx context.Context, authorID uuid.UUID, content string) (*comments.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, utils.NewError(utils.ErrBadRequest.Code, "Comment content cannot be empty")
	}

	author, err := s.Users.UserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	created, err := s.Comments.CreateComment(ctx, author.ID, content)
	if err != nil {
		return nil, err
	}

	s.autoModerate(ctx, created)

	return created, nil
}

// autoModerate sequences the flagging side effect strictly after the
// classifier verdict (or its fail-open default). No admin account means the
// verdict silently drops.
func (s *Service) autoModerate(ctx context.Context, c *comments.Comment) {
	verdict := s.Classifier.Evaluate(ctx, c.Content)
	if !verdict.Flagged {
		return
	}

	mod, err := s.Users.SystemModerator(ctx)
	if err != nil {
		s.warn(ctx, "No system moderator available, dropping auto-flag", err)
		return
	}

	if _, err := s.Actions.CreateAction(ctx, c.ID, mod.ID, comments.ActionFlag); err != nil {
		s.warn(ctx, "Failed to record auto-flag", err)
		return
	}

	if s.Logger != nil {
		s.Logger.Info(ctx).WithMeta(utils.Map{
			"comment_id": c.ID.String(),
			"actor_id":   mod.ID.String(),
			"reason":     verdict.Reason,
			"category":   verdict.Category,
		}).Logs("Comment auto-flagged by classifier")
	}
}

// Flag records a manual FLAG action. The actor must be an admin and both the
// comment and actor must exist.
func (s *Service) Flag(ctx context.Context, commentID uuid.UUID, actor *user.User) error {
	if !actor.IsAdmin() {
		return utils.NewError(utils.ErrForbidden.Code, "Only moderators can flag comments")
	}
	if _, err := s.Comments.CommentByID(ctx, commentID); err != nil {
		return err
	}
	_, err := s.Actions.CreateAction(ctx, commentID, actor.ID, comments.ActionFlag)
	return err
}

// Unflag reverses every active flag on the comment by appending an UNFLAG
// action. Unflagging an unflagged comment is a no-op: no record, no error.
func (s *Service) Unflag(ctx context.Context, commentID uuid.UUID, actor *user.User) error {
	if !actor.IsAdmin() {
		return utils.NewError(utils.ErrForbidden.Code, "Only moderators can unflag comments")
	}
	if _, err := s.Comments.CommentByID(ctx, commentID); err != nil {
		return err
	}

	active, err := s.Actions.ActiveFlagsFor(ctx, commentID)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}

	_, err = s.Actions.CreateAction(ctx, commentID, actor.ID, comments.ActionUnflag)
	return err
}

// DryRun classifies content without persisting anything.
func (s *Service) DryRun(ctx context.Context, content string) Verdict {
	return s.Classifier.Evaluate(ctx, content)
}

// FlagView exposes flag metadata to moderator views.
type FlagView struct {
	ActorID   uuid.UUID `json:"actor_id"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the per-viewer shape of a comment.
type CommentView struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	Hidden    bool       `json:"is_hidden"`
	Flags     []FlagView `json:"flags,omitempty"`
}

// VisibleComments lists the comments the viewer may see, newest first. Admin
// viewers additionally get the hidden state and flag metadata; everyone else
// gets a view with no trace of moderation.
func (s *Service) VisibleComments(ctx context.Context, viewer *user.User) ([]CommentView, error) {
	all, err := s.Comments.ListComments(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(all))
	for i := range all {
		c := &all[i]
		active := c.ActiveFlags()
		if !Visible(c, active, viewer) {
			continue
		}

		view := CommentView{
			ID:        c.ID,
			Content:   c.Content,
			AuthorID:  c.AuthorID,
			Author:    c.Author.Username,
			CreatedAt: c.CreatedAt,
		}
		if viewer.IsAdmin() {
			view.Hidden = len(active) > 0
			for _, f := range active {
				view.Flags = append(view.Flags, FlagView{
					ActorID:   f.ActorID,
					Actor:     f.Actor.Username,
					CreatedAt: f.CreatedAt,
				})
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs(msg)
	}
}
