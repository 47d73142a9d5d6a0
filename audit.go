package main

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// recordAdminAction appends an audit row for an admin mutation. Callers
// log the error and move on; a failed audit write never fails the
// mutation it describes.
func recordAdminAction(ctx context.Context, db connOrTx, adminID int, targetTable, action, statement string) error {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return fmt.Errorf("error ulid.New: %w", err)
	}
	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO admin_history (`ulid`, `admin_id`, `acted_at`, `target_table`, `action`, `statement`) VALUES (?, ?, ?, ?, ?, ?)",
		id.String(), adminID, now, targetTable, action, statement,
	); err != nil {
		return fmt.Errorf("error Insert admin_history: %w", err)
	}
	return nil
}
