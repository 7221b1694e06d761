// Package testutil provides the shared database fixture for repository
// and builder tests: an in-memory SQLite instance with the source schema
// migrated, matching the dataset's native backend.
package testutil

import (
	"testing"
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory database with all source tables
// migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Order{},
		&entity.Customer{},
		&entity.OrderPayment{},
		&entity.OrderReview{},
		&entity.OrderItem{},
		&entity.Product{},
		&entity.CategoryTranslation{},
		&entity.Seller{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// MustTime parses a "2006-01-02 15:04:05" timestamp or fails the test.
func MustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("Failed to parse time %q: %v", value, err)
	}
	return ts
}

// TimePtr returns a pointer to ts.
func TimePtr(ts time.Time) *time.Time {
	return &ts
}
