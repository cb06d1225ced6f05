package repositories

import (
	"context"
	"fmt"

	"spendwise/pkg/utils"
)

// UpdateUserBankInfo persists the profile fields pulled from monobank onto
// the local user row.
func (s *Store) UpdateUserBankInfo(ctx context.Context, userID int, firstName, lastName, token string) error {
	result, err := s.DB.ExecContext(ctx, `
		UPDATE user
		SET first_name = ?, last_name = ?, monobank_token = ?
		WHERE id = ?
	`, firstName, lastName, token, userID)
	if err != nil {
		return fmt.Errorf("failed to update user=%d: %w", userID, err)
	}

	// MySQL reports 0 affected rows for a no-change update, so this is only
	// informational.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		utils.Logger.Warnf("Update of user=%d changed no rows", userID)
	}
	return nil
}
