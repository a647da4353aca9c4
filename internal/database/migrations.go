package database

import (
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema and the supporting indexes.
func Migrate(db *gorm.DB, l log.Logger) error {
	level.Info(l).Log("msg", "running database migrations")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, l); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	level.Info(l).Log("msg", "database migrations completed")
	return nil
}

// AddIndexes adds indexes AutoMigrate cannot express through struct tags.
func AddIndexes(db *gorm.DB, l log.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Owner-scoped list ordered by newest first
		{"tasks", "idx_tasks_user_created", "user_id, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			level.Debug(l).Log("msg", "index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		level.Info(l).Log("msg", "created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
