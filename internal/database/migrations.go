package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Board listing filters on the soft-delete flag
		{"boards", "idx_boards_is_deleted", "is_deleted"},

		// Participant scoping joins
		{"board_participants", "idx_board_participants_board_id", "board_id"},
		{"board_participants", "idx_board_participants_user_id", "user_id"},

		// Category filtering and scoping
		{"goal_categories", "idx_goal_categories_board_id", "board_id"},
		{"goal_categories", "idx_goal_categories_user_id", "user_id"},
		{"goal_categories", "idx_goal_categories_is_deleted", "is_deleted"},

		// Goal filtering and sorting
		{"goals", "idx_goals_category_id", "category_id"},
		{"goals", "idx_goals_status", "status"},
		{"goals", "idx_goals_priority", "priority"},
		{"goals", "idx_goals_due_date", "due_date"},

		// Comment listing
		{"goal_comments", "idx_goal_comments_goal_id", "goal_id"},
		{"goal_comments", "idx_goal_comments_created_at", "created_at"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
