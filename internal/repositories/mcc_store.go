package repositories

import (
	"context"
	"fmt"

	"spendwise/internal/models"
)

// MCCs returns the full merchant category taxonomy.
func (s *Store) MCCs(ctx context.Context) ([]models.MCC, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT code, category_id FROM mcc`)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mcc codes: %w", err)
	}
	defer rows.Close()

	var mccs []models.MCC
	for rows.Next() {
		var m models.MCC
		if err := rows.Scan(&m.Code, &m.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan mcc row: %w", err)
		}
		mccs = append(mccs, m)
	}
	return mccs, rows.Err()
}
