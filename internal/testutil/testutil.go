// Package testutil holds helpers shared by database-backed tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/microservices/http-api/models"
)

// SetupTestDB returns a migrated sqlite database private to the test.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "yamdb_test.db")
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(path)), false)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

// CreateUser inserts a user with the given role; username and email derive from name.
func CreateUser(t testing.TB, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: name,
		Email:    name + "@yamdb.test",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}
