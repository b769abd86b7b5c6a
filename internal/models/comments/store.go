package models

import (
	"context"
	"time"

	storage "github.com/civicdev/civicboard/internal/db"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// feedKey caches the fully-preloaded comment feed. Every write through the
// store drops it so moderators read their own flags back immediately.
const feedKey = "comments:feed"

// Store persists comments and their moderation action log.
type Store struct {
	DB    *gorm.DB
	Cache *storage.RedisClient
}

func NewStore(db *gorm.DB, cache *storage.RedisClient) *Store {
	return &Store{DB: db, Cache: cache}
}

// CreateComment persists a new comment for the given author.
func (s *Store) CreateComment(ctx context.Context, authorID uuid.UUID, content string) (*Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "comment creation canceled")
	}

	c := &Comment{
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create comment")
	}

	s.invalidateFeed(ctx)

	return c, nil
}

// CommentByID returns a single comment with its action log, or a NotFound error.
func (s *Store) CommentByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Preload("Actions").
		Preload("Actions.Actor").
		First(&c, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewError(utils.ErrNotFound.Code, "Comment not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get comment")
	}
	return &c, nil
}

// ListComments returns every comment, newest first, with author and action log
// preloaded. The feed is served from Redis between writes.
func (s *Store) ListComments(ctx context.Context) ([]Comment, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, feedKey).Result(); err == nil {
			var out []Comment
			if unmarshalFeed(cached, &out) {
				return out, nil
			}
		}
	}

	var out []Comment
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Preload("Actions").
		Preload("Actions.Actor").
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list comments")
	}

	s.cacheFeed(ctx, out)

	return out, nil
}

// CreateAction appends a FLAG or UNFLAG record to the comment's action log.
func (s *Store) CreateAction(ctx context.Context, commentID, actorID uuid.UUID, kind string) (*ModAction, error) {
	if kind != ActionFlag && kind != ActionUnflag {
		return nil, utils.NewError(utils.ErrBadRequest.Code, "Unknown moderation action type", kind)
	}

	a := &ModAction{
		Type:      kind,
		CommentID: commentID,
		ActorID:   actorID,
	}
	if err := s.DB.WithContext(ctx).Create(a).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to record moderation action")
	}

	s.invalidateFeed(ctx)

	return a, nil
}

// ActiveFlagsFor returns the flags currently in force for a comment.
func (s *Store) ActiveFlagsFor(ctx context.Context, commentID uuid.UUID) ([]ModAction, error) {
	var actions []ModAction
	err := s.DB.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at asc").
		Find(&actions).Error
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to load moderation actions")
	}
	return ActiveFlags(actions), nil
}

func (s *Store) invalidateFeed(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Del(ctx, feedKey)
	}
}

func (s *Store) cacheFeed(ctx context.Context, feed []Comment) {
	if s.Cache == nil {
		return
	}
	if data, err := marshalFeed(feed); err == nil {
		s.Cache.Set(ctx, feedKey, data, time.Minute)
	}
}
