package moderation

import (
	"context"
	"testing"
	"time"

	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[uuid.UUID]*user.User
	admin *user.User
}

func (f *fakeDirectory) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, utils.NewError(utils.ErrNotFound.Code, "User not found")
}

func (f *fakeDirectory) SystemModerator(_ context.Context) (*user.User, error) {
	if f.admin == nil {
		return nil, utils.NewError(utils.ErrNotFound.Code, "No moderator account exists")
	}
	return f.admin, nil
}

// fakeBoard implements CommentStore and ActionLog in memory with strictly
// increasing action timestamps.
type fakeBoard struct {
	dir      *fakeDirectory
	comments map[uuid.UUID]*comments.Comment
	actions  map[uuid.UUID][]comments.ModAction
	order    []uuid.UUID
	clock    time.Time
}

func newFakeBoard(dir *fakeDirectory) *fakeBoard {
	return &fakeBoard{
		dir:      dir,
		comments: make(map[uuid.UUID]*comments.Comment),
		actions:  make(map[uuid.UUID][]comments.ModAction),
		clock:    time.Now(),
	}
}

func (f *fakeBoard) tick() time.Time {
	f.clock = f.clock.Add(time.Millisecond)
	return f.clock
}

func (f *fakeBoard) CreateComment(_ context.Context, authorID uuid.UUID, content string) (*comments.Comment, error) {
	c := &comments.Comment{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: f.tick(),
	}
	f.comments[c.ID] = c
	f.order = append(f.order, c.ID)
	return c, nil
}

func (f *fakeBoard) CommentByID(_ context.Context, id uuid.UUID) (*comments.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, utils.NewError(utils.ErrNotFound.Code, "Comment not found")
	}
	return c, nil
}

func (f *fakeBoard) ListComments(_ context.Context) ([]comments.Comment, error) {
	out := make([]comments.Comment, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		c := *f.comments[f.order[i]]
		if author, ok := f.dir.users[c.AuthorID]; ok {
			c.Author = *author
		}
		c.Actions = append([]comments.ModAction(nil), f.actions[c.ID]...)
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeBoard) CreateAction(_ context.Context, commentID, actorID uuid.UUID, kind string) (*comments.ModAction, error) {
	a := comments.ModAction{
		ID:        uuid.New(),
		Type:      kind,
		CommentID: commentID,
		ActorID:   actorID,
		CreatedAt: f.tick(),
	}
	if actor, ok := f.dir.users[actorID]; ok {
		a.Actor = *actor
	}
	f.actions[commentID] = append(f.actions[commentID], a)
	return &a, nil
}

func (f *fakeBoard) ActiveFlagsFor(_ context.Context, commentID uuid.UUID) ([]comments.ModAction, error) {
	return comments.ActiveFlags(f.actions[commentID]), nil
}

type fakeClassifier struct {
	verdict Verdict
	calls   int
	last    string
}

func (f *fakeClassifier) Evaluate(_ context.Context, content string) Verdict {
	f.calls++
	f.last = content
	return f.verdict
}

func newFixture(verdict Verdict) (*Service, *fakeDirectory, *fakeBoard, *fakeClassifier) {
	admin := &user.User{ID: uuid.New(), Username: "Admin", Role: user.RoleAdmin}
	author := &user.User{ID: uuid.New(), Username: "User", Role: user.RoleUser}
	second := &user.User{ID: uuid.New(), Username: "User2", Role: user.RoleUser}

	dir := &fakeDirectory{
		users: map[uuid.UUID]*user.User{
			admin.ID:  admin,
			author.ID: author,
			second.ID: second,
		},
		admin: admin,
	}
	board := newFakeBoard(dir)
	classifier := &fakeClassifier{verdict: verdict}

	return NewService(dir, board, board, classifier, nil), dir, board, classifier
}

func findByRole(dir *fakeDirectory, role, exceptName string) *user.User {
	for _, u := range dir.users {
		if u.Role == role && u.Username != exceptName {
			return u
		}
	}
	return nil
}

func TestSubmitCommentPublishes(t *testing.T) {
	svc, dir, board, classifier := newFixture(Verdict{})
	author := findByRole(dir, user.RoleUser, "User2")

	created, err := svc.SubmitComment(context.Background(), author.ID, "This is a test comment")
	require.NoError(t, err)
	assert.Equal(t, "This is a test comment", created.Content)
	assert.Equal(t, author.ID, created.AuthorID)
	assert.Equal(t, 1, classifier.calls)
	assert.Equal(t, "This is a test comment", classifier.last)
	assert.Empty(t, board.actions[created.ID])

	// Unflagged comment is visible to the author, another user, and the admin.
	for _, u := range dir.users {
		views, err := svc.VisibleComments(context.Background(), u)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "This is a test comment", views[0].Content)
	}
}

func TestSubmitCommentUnknownAuthor(t *testing.T) {
	svc, _, board, classifier := newFixture(Verdict{})

	_, err := svc.SubmitComment(context.Background(), uuid.New(), "hello")
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
	assert.Empty(t, board.comments, "no partial comment may be created")
	assert.Zero(t, classifier.calls)
}

func TestSubmitCommentEmptyContent(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{})
	author := findByRole(dir, user.RoleUser, "User2")

	_, err := svc.SubmitComment(context.Background(), author.ID, "   ")
	require.Error(t, err)
	assert.Empty(t, board.comments)
}

func TestSubmitFlaggedCreatesShadowBan(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{Flagged: true, Status: 406, Reason: "auto-flagged"})
	author := findByRole(dir, user.RoleUser, "User2")
	admin := dir.admin

	created, err := svc.SubmitComment(context.Background(), author.ID, "something hateful")
	require.NoError(t, err)

	actions := board.actions[created.ID]
	require.Len(t, actions, 1)
	assert.Equal(t, comments.ActionFlag, actions[0].Type)
	assert.Equal(t, admin.ID, actions[0].ActorID)

	// Author still sees it, with no trace of the flag.
	views, err := svc.VisibleComments(context.Background(), author)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Hidden)
	assert.Empty(t, views[0].Flags)

	// A second regular viewer cannot see it.
	var second *user.User
	for _, u := range dir.users {
		if u.Role == user.RoleUser && u.ID != author.ID {
			second = u
		}
	}
	views, err = svc.VisibleComments(context.Background(), second)
	require.NoError(t, err)
	assert.Empty(t, views)

	// The admin sees it with full flag metadata.
	views, err = svc.VisibleComments(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Hidden)
	require.Len(t, views[0].Flags, 1)
	assert.Equal(t, admin.ID, views[0].Flags[0].ActorID)
	assert.Equal(t, "Admin", views[0].Flags[0].Actor)
	assert.False(t, views[0].Flags[0].CreatedAt.IsZero())
}

func TestSubmitFlaggedWithoutAdminFailsOpen(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{Flagged: true})
	dir.admin = nil
	author := findByRole(dir, user.RoleUser, "User2")

	created, err := svc.SubmitComment(context.Background(), author.ID, "something hateful")
	require.NoError(t, err, "missing moderator must not block publication")
	assert.Empty(t, board.actions[created.ID])
}

func TestManualFlagUnflagLifecycle(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{})
	author := findByRole(dir, user.RoleUser, "User2")
	admin := dir.admin

	created, err := svc.SubmitComment(context.Background(), author.ID, "borderline take")
	require.NoError(t, err)

	var second *user.User
	for _, u := range dir.users {
		if u.Role == user.RoleUser && u.ID != author.ID {
			second = u
		}
	}

	require.NoError(t, svc.Flag(context.Background(), created.ID, admin))

	views, err := svc.VisibleComments(context.Background(), second)
	require.NoError(t, err)
	assert.Empty(t, views, "flagged comment must vanish for third parties")

	require.NoError(t, svc.Unflag(context.Background(), created.ID, admin))

	views, err = svc.VisibleComments(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "borderline take", views[0].Content)

	// The action log keeps the full audit trail.
	require.Len(t, board.actions[created.ID], 2)
	assert.Equal(t, comments.ActionFlag, board.actions[created.ID][0].Type)
	assert.Equal(t, comments.ActionUnflag, board.actions[created.ID][1].Type)
}

func TestUnflagIdempotent(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{})
	author := findByRole(dir, user.RoleUser, "User2")
	admin := dir.admin

	created, err := svc.SubmitComment(context.Background(), author.ID, "fine comment")
	require.NoError(t, err)

	require.NoError(t, svc.Unflag(context.Background(), created.ID, admin))
	assert.Empty(t, board.actions[created.ID], "unflagging an unflagged comment records nothing")

	require.NoError(t, svc.Flag(context.Background(), created.ID, admin))
	require.NoError(t, svc.Unflag(context.Background(), created.ID, admin))
	require.NoError(t, svc.Unflag(context.Background(), created.ID, admin))
	assert.Len(t, board.actions[created.ID], 2, "second unflag is a no-op")
}

func TestManualActionsRequireAdmin(t *testing.T) {
	svc, dir, _, _ := newFixture(Verdict{})
	author := findByRole(dir, user.RoleUser, "User2")

	created, err := svc.SubmitComment(context.Background(), author.ID, "hello")
	require.NoError(t, err)

	err = svc.Flag(context.Background(), created.ID, author)
	require.Error(t, err)

	err = svc.Unflag(context.Background(), created.ID, author)
	require.Error(t, err)
}

func TestManualFlagMissingComment(t *testing.T) {
	svc, dir, board, _ := newFixture(Verdict{})

	err := svc.Flag(context.Background(), uuid.New(), dir.admin)
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
	assert.Empty(t, board.actions)
}

func TestDryRunDoesNotPersist(t *testing.T) {
	svc, _, board, classifier := newFixture(Verdict{Flagged: true, Status: 406})

	v := svc.DryRun(context.Background(), "probe text")
	assert.True(t, v.Flagged)
	assert.Equal(t, "probe text", classifier.last)
	assert.Empty(t, board.comments)
	assert.Empty(t, board.actions)
}
