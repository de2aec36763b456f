package services

import (
	"io"
	"log/slog"
	"testing"

	"codebliss/internal/models"
	"codebliss/internal/repository"
	"codebliss/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+utils.NewID()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, repository.AutoMigrate(db), "failed to migrate database")
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test " + username, Username: username, Email: username + "@example.com"}
	user.SetPassword("Passw0rd!")
	require.NoError(t, db.Create(user).Error)
	return user
}
