package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddPendingUniqueIndexes creates partial unique indexes guaranteeing at most
// one pending invitation or membership request per (company, user) pair.
// Concurrent check-then-insert callers both passing the application-level
// pre-check hit the index instead of creating duplicate pending rows.
func AddPendingUniqueIndexes(db *gorm.DB) error {
	indexes := []struct {
		table string
		name  string
		sql   string
	}{
		{
			"company_invitations",
			"idx_company_invitations_pending_pair",
			`CREATE UNIQUE INDEX idx_company_invitations_pending_pair
				ON company_invitations (company_id, invited_user_id)
				WHERE status = 'pending'`,
		},
		{
			"company_membership_requests",
			"idx_membership_requests_pending_pair",
			`CREATE UNIQUE INDEX idx_membership_requests_pending_pair
				ON company_membership_requests (company_id, user_id)
				WHERE status = 'pending'`,
		},
	}

	for _, idx := range indexes {
		if db.Dialector.Name() == "postgres" {
			var count int64
			err := db.Raw(`
				SELECT COUNT(*)
				FROM pg_indexes
				WHERE indexname = ?
			`, idx.name).Scan(&count).Error
			if err != nil {
				return fmt.Errorf("failed to check index %s: %w", idx.name, err)
			}
			if count > 0 {
				continue
			}
		} else if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
