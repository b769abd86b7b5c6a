package v1

import (
	storage "github.com/civicdev/civicboard/internal/db"
	user "github.com/civicdev/civicboard/internal/models/user"
	"github.com/civicdev/civicboard/internal/moderation"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/civicdev/civicboard/pkg/utils"
	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	Redis     *storage.RedisClient
	Logger    *logger.Logger
	Users     *user.Store
	Service   *moderation.Service
	JWTSecret string
	Validator = utils.NewValidator()
)

// Setup wires the handler package dependencies once at boot.
func Setup(db *gorm.DB, rclient *storage.RedisClient, log *logger.Logger, users *user.Store, service *moderation.Service, jwtSecret string) {
	DB = db
	Redis = rclient
	Logger = log
	Users = users
	Service = service
	JWTSecret = jwtSecret
}
