package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
)

func Migrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info().Msg("database migrations completed")
	return nil
}

// AddIndexes creates the secondary indexes the list endpoints depend on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_assigned_to_user_id", "assigned_to_user_id"},
		{"tasks", "idx_tasks_created_by_user_id", "created_by_user_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		{"comments", "idx_comments_task_id", "task_id"},
		{"comments", "idx_comments_user_id", "user_id"},
		{"comments", "idx_comments_created_at", "created_at"},

		{"activity_logs", "idx_activity_logs_user_id", "user_id"},
		{"activity_logs", "idx_activity_logs_task_id", "task_id"},
		{"activity_logs", "idx_activity_logs_timestamp", "timestamp"},

		{"messages", "idx_messages_sender_user_id", "sender_user_id"},
		{"messages", "idx_messages_recipient_user_id", "recipient_user_id"},
		{"messages", "idx_messages_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}
