package bank

import (
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/models"
	"spendwise/pkg/utils"
)

// NormalizeStatementItem converts a raw provider record into the stored
// shape: minor currency units scaled to decimals, epoch seconds to a local
// instant, and an MCC outside the known taxonomy replaced with the
// uncategorized sentinel.
func NormalizeStatementItem(userID int, item StatementItem, validCodes map[int]struct{}) models.Transaction {
	mcc := item.MCC
	if _, ok := validCodes[mcc]; !ok {
		utils.Logger.Warnf("Unknown mcc=%d on transaction=%s, storing as uncategorized", mcc, item.ID)
		mcc = models.UncategorizedMCC
	}

	return models.Transaction{
		ID:        item.ID,
		UserID:    userID,
		Amount:    minorUnits(item.Amount),
		Balance:   minorUnits(item.Balance),
		Cashback:  minorUnits(item.CashbackAmount),
		MCC:       mcc,
		Timestamp: time.Unix(item.Time, 0),
		Info:      item.Description,
	}
}

// minorUnits scales an integer amount of minor currency units (kopiykas)
// down to the major unit with exact precision.
func minorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// StartOfMonth truncates t to the first instant of its calendar month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
