package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one financial movement pulled from monobank.
// ID is the provider-assigned identifier and the idempotency key:
// re-importing the same ID must never create a second row.
type Transaction struct {
	ID        string          `json:"id" db:"id"`
	UserID    int             `json:"user_id" db:"user_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Cashback  decimal.Decimal `json:"cashback" db:"cashback"`
	MCC       int             `json:"mcc" db:"mcc"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
	Info      string          `json:"info" db:"info"`
}

// TransactionRow is the string-rendered shape returned by period queries,
// with the category name joined in.
type TransactionRow struct {
	ID           string `json:"id"`
	UserID       int    `json:"user_id"`
	Amount       string `json:"amount"`
	Balance      string `json:"balance"`
	Cashback     string `json:"cashback"`
	MCC          int    `json:"mcc"`
	Timestamp    string `json:"timestamp"`
	Info         string `json:"info"`
	CategoryName string `json:"category_name"`
}
