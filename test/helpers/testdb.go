package helpers

import (
	"fmt"
	"testing"
	"time"

	"jobmarket_backend/database"
	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestConfig is Default() tuned for tests: sqlite, cheap bcrypt, local
// storage under a temp dir and no rate limiting.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Server.EnableSwagger = false
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Email.Provider = "log"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/uploads"
	cfg.RateLimit.Enabled = false
	cfg.Workers.CleanupInterval = config.Duration(time.Hour)
	return cfg
}

// NewTestDB opens a private in-memory sqlite database with every table
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenTestDB(t, TestConfig(t).Database)
}

func OpenTestDB(t *testing.T, cfg config.DatabaseConfig) *gorm.DB {
	t.Helper()

	db, err := database.Open(cfg)
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.AutoMigrate(db), "migrate sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user directly, bypassing the service layer.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateGuestCandidate inserts an unclaimed candidate profile.
func CreateGuestCandidate(t *testing.T, db *gorm.DB, fullName string) *models.CandidateProfile {
	t.Helper()

	profile := &models.CandidateProfile{
		FullName:       fullName,
		WorkingModel:   models.WorkingModelRemote,
		SalaryCurrency: "USD",
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateGuestCompany inserts an unclaimed company.
func CreateGuestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()

	company := &models.Company{CompanyName: name}
	require.NoError(t, db.Create(company).Error)
	return company
}
