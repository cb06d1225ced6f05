package routers

import (
	"net/http"

	"spendwise/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/transactions", transactions.GetUserTransactions)

	mux.HandleFunc("/transactions/report/month", transactions.GetMonthReport)

	mux.HandleFunc("/transactions/report/daily", transactions.GetDailyReports)

	return mux
}
