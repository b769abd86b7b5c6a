package models

import (
	"context"

	storage "github.com/civicdev/civicboard/internal/db"
	comments "github.com/civicdev/civicboard/internal/models/comments"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/civicdev/civicboard/pkg/utils"
	"gorm.io/gorm"
)

func RegisterModels() []interface{} {
	return []interface{}{
		&user.User{},
		&comments.Comment{},
		&comments.ModAction{},
	}
}

type (
	User      = user.User
	Comment   = comments.Comment
	ModAction = comments.ModAction
)

var (
	NewUser      = user.NewUser
	WithRole     = user.WithRole
	AsAdmin      = user.AsAdmin
	WithUsername = user.WithUsername
)

// SeedDemo populates the demo board on first boot: one admin, three residents,
// three comments, and a pre-flagged inappropriate comment. Subsequent boots
// leave existing data untouched.
func SeedDemo(ctx context.Context, rclient *storage.RedisClient, db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&user.User{}).Count(&count).Error; err != nil {
		return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count users for seeding")
	}
	if count > 0 {
		log.Info(ctx).Logs("Demo data already present, skipping seed")
		return nil
	}

	admin, err := user.NewUser(ctx, rclient, db, "Admin", user.AsAdmin())
	if err != nil {
		return err
	}
	user1, err := user.NewUser(ctx, rclient, db, "User")
	if err != nil {
		return err
	}
	user2, err := user.NewUser(ctx, rclient, db, "User2")
	if err != nil {
		return err
	}
	user3, err := user.NewUser(ctx, rclient, db, "ConcernedResident")
	if err != nil {
		return err
	}

	store := comments.NewStore(db, rclient)

	if _, err := store.CreateComment(ctx, user1.ID, "It's a complex issue. We need more supportive housing and mental health services alongside long-term affordability policies."); err != nil {
		return err
	}
	inappropriate, err := store.CreateComment(ctx, user2.ID, "If immigrants stopped coming here, there'd be enough housing for the rest of us.")
	if err != nil {
		return err
	}
	if _, err := store.CreateComment(ctx, user3.ID, "Shelter capacity helps in emergencies, but permanent housing and case management reduce return-to-homelessness rates."); err != nil {
		return err
	}

	if _, err := store.CreateAction(ctx, inappropriate.ID, admin.ID, comments.ActionFlag); err != nil {
		return err
	}

	log.Info(ctx).WithMeta(utils.Map{
		"users":    "4",
		"comments": "3",
	}).Logs("Demo data seeded")

	return nil
}
