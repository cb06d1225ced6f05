package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"spendwise/internal/models"
)

// ErrDuplicateTransaction reports an insert that collided with an already
// imported provider id. The importer treats it as success-with-skip.
var ErrDuplicateTransaction = errors.New("a transaction with that id already exists")

const mysqlDuplicateEntry = 1062

func (s *Store) InsertTransaction(ctx context.Context, t models.Transaction) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO transaction (id, user_id, amount, balance, cashback, mcc, timestamp, info)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Amount, t.Balance, t.Cashback, t.MCC, t.Timestamp, t.Info)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create transaction %s: %w", t.ID, err)
	}
	return nil
}

// Transactions returns a user's movements within the period, amounts rendered
// as strings and the category name joined in.
func (s *Store) Transactions(ctx context.Context, userID int, start, end time.Time) ([]models.TransactionRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT t.id, t.user_id,
		       CAST(t.amount AS CHAR), CAST(t.balance AS CHAR), CAST(t.cashback AS CHAR),
		       t.mcc, DATE_FORMAT(t.timestamp, '%Y.%m.%d %H:%i:%s'), t.info,
		       c.name
		FROM transaction t
		JOIN mcc m ON t.mcc = m.code
		JOIN mcc_category c ON m.category_id = c.id
		WHERE t.user_id = ? AND t.timestamp BETWEEN ? AND ?
		ORDER BY t.timestamp
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions for user=%d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []models.TransactionRow
	for rows.Next() {
		var t models.TransactionRow
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Balance, &t.Cashback, &t.MCC, &t.Timestamp, &t.Info, &t.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// MonthReport sums outgoing (negative) amounts per category for the month,
// magnitude rendered as a decimal string.
func (s *Store) MonthReport(ctx context.Context, userID, year, month int) ([]models.CategoryReport, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.name, c.info, CAST(ABS(SUM(t.amount)) AS CHAR)
		FROM transaction t
		JOIN mcc m ON t.mcc = m.code
		JOIN mcc_category c ON m.category_id = c.id
		WHERE t.user_id = ? AND t.amount < 0
		  AND MONTH(t.timestamp) = ? AND YEAR(t.timestamp) = ?
		GROUP BY c.name, c.info
	`, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve month report for user=%d: %w", userID, err)
	}
	defer rows.Close()

	var reports []models.CategoryReport
	for rows.Next() {
		var r models.CategoryReport
		if err := rows.Scan(&r.Name, &r.Info, &r.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan month report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// DailyReports sums outgoing amounts per day within the period.
func (s *Store) DailyReports(ctx context.Context, userID int, start, end time.Time) ([]models.DailyReport, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT DATE_FORMAT(t.timestamp, '%Y.%m.%d'), CAST(ABS(SUM(t.amount)) AS CHAR)
		FROM transaction t
		WHERE t.user_id = ? AND t.amount < 0 AND t.timestamp BETWEEN ? AND ?
		GROUP BY DATE_FORMAT(t.timestamp, '%Y.%m.%d')
		ORDER BY DATE_FORMAT(t.timestamp, '%Y.%m.%d')
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve daily reports for user=%d: %w", userID, err)
	}
	defer rows.Close()

	var reports []models.DailyReport
	for rows.Next() {
		var r models.DailyReport
		if err := rows.Scan(&r.Date, &r.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan daily report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
