package database

import (
	"fmt"

	"github.com/victor-romero-martinez/api-agendapp/internal/logs"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes that the model tags do not declare.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task listing by author and dashboard, newest first
		{"tasks", "idx_tasks_author_created", "author_id, created_at"},
		{"tasks", "idx_tasks_dashboard_status", "dashboard_id, status"},

		// Login and requester resolution
		{"users", "idx_users_email_active", "email, active"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			logs.Logger.Debugf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logs.Logger.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
