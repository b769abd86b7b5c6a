package models

import (
	"context"
	"encoding/json"
	"time"

	storage "github.com/civicdev/civicboard/internal/db"
	"github.com/civicdev/civicboard/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board roles. A user's role is fixed at creation; the board has no promotion flow.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Username string `gorm:"size:255;not null;unique" json:"username" validate:"required,min=2,max=255"`
	Role     string `gorm:"size:20;not null;default:'USER'" json:"role" validate:"required,oneof=USER ADMIN"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserOption configures a User.
type UserOption func(*User)

// NewUser creates a new User and caches it for identity lookups.
func NewUser(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, username string, opts ...UserOption) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "user creation canceled")
	}

	u := &User{
		Username: username,
		Role:     RoleUser,
	}

	for _, opt := range opts {
		opt(u)
	}

	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create user in database")
	}

	cacheUser(ctx, rclient, u)

	return u, nil
}

// Store resolves board identities backed by PostgreSQL with a Redis read-through cache.
type Store struct {
	DB    *gorm.DB
	Cache *storage.RedisClient
}

func NewStore(db *gorm.DB, cache *storage.RedisClient) *Store {
	return &Store{DB: db, Cache: cache}
}

// UserByID returns the user with the given ID, or a NotFound error.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, userKey(id)).Result(); err == nil {
			var u User
			if json.Unmarshal([]byte(cached), &u) == nil {
				return &u, nil
			}
		}
	}

	var u User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewError(utils.ErrNotFound.Code, "User not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get user")
	}

	cacheUser(ctx, s.Cache, &u)

	return &u, nil
}

// ListUsers returns every board identity, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list users")
	}
	return users, nil
}

// SystemModerator returns the identity auto-flags are attributed to: the oldest
// ADMIN account. A NotFound error means no admin exists and auto-flagging no-ops.
func (s *Store) SystemModerator(ctx context.Context) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).
		Where("role = ?", RoleAdmin).
		Order("created_at asc").
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewError(utils.ErrNotFound.Code, "No moderator account exists")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to resolve system moderator")
	}
	return &u, nil
}

// DefaultViewer returns the identity used when a request carries no session
// cookie: the oldest USER account.
func (s *Store) DefaultViewer(ctx context.Context) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).
		Where("role = ?", RoleUser).
		Order("created_at asc").
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewError(utils.ErrNotFound.Code, "No default user exists")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to resolve default viewer")
	}
	return &u, nil
}

func userKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func cacheUser(ctx context.Context, rclient *storage.RedisClient, u *User) {
	if rclient == nil {
		return
	}
	userJSON, err := json.Marshal(u)
	if err != nil {
		return
	}
	rclient.Set(ctx, userKey(u.ID), userJSON, 10*time.Minute)
}
