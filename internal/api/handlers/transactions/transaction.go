package transactions

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"spendwise/internal/cache"
	"spendwise/internal/models"
	"spendwise/internal/repositories"
	"spendwise/internal/repositories/sqlconnect"
	"spendwise/internal/services"
	"spendwise/pkg/utils"
)

func requestUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return int(idFloat), true
}

// periodFromQuery reads start_date/end_date, defaulting to the last 7 days.
func periodFromQuery(r *http.Request) (start, end time.Time, err error) {
	end = time.Now()
	start = end.AddDate(0, 0, -7)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err = time.ParseInLocation(utils.DateTimeFormat, raw, time.Local)
		if err != nil {
			return start, end, err
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err = time.ParseInLocation(utils.DateTimeFormat, raw, time.Local)
	}
	return start, end, err
}

// GetUserTransactions returns the user's movements for a period.
func GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	start, end, err := periodFromQuery(r)
	if err != nil {
		utils.WriteError(w, "query arguments start_date or end_date is not correct, expected format: "+utils.DateTimeFormat, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := repositories.NewStore(db).Transactions(ctx, userID, start, end)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.TransactionRow{}
	}

	response := struct {
		Status string                  `json:"status"`
		Count  int                     `json:"count"`
		Data   []models.TransactionRow `json:"data"`
	}{
		Status: "success",
		Count:  len(rows),
		Data:   rows,
	}
	utils.WriteJSON(w, response)
}

// GetMonthReport returns per-category outgoing totals for a month, served
// through the report cache.
func GetMonthReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	today := time.Now()
	year, month := today.Year(), int(today.Month())
	var err error
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			utils.WriteError(w, "query argument year is not correct", http.StatusUnprocessableEntity)
			return
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil || month < 1 || month > 12 {
			utils.WriteError(w, "query argument month is not correct", http.StatusUnprocessableEntity)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reportService := services.NewReportService(repositories.NewStore(db), cache.Shared())
	reports, err := reportService.MonthReport(ctx, userID, year, month)
	if err != nil {
		utils.Logger.Errorf("error fetching month report: %v", err)
		utils.WriteError(w, "error fetching month report", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []models.CategoryReport{}
	}

	response := struct {
		Status     string                  `json:"status"`
		Year       int                     `json:"year"`
		Month      int                     `json:"month"`
		Categories []models.CategoryReport `json:"categories"`
	}{
		Status:     "success",
		Year:       year,
		Month:      month,
		Categories: reports,
	}
	utils.WriteJSON(w, response)
}

// GetDailyReports returns per-day outgoing totals for a period.
func GetDailyReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	start, end, err := periodFromQuery(r)
	if err != nil {
		utils.WriteError(w, "query arguments start_date or end_date is not correct, expected format: "+utils.DateTimeFormat, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reportService := services.NewReportService(repositories.NewStore(db), cache.Shared())
	reports, err := reportService.DailyReports(ctx, userID, start, end)
	if err != nil {
		utils.Logger.Errorf("error fetching daily reports: %v", err)
		utils.WriteError(w, "error fetching daily reports", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []models.DailyReport{}
	}

	response := struct {
		Status string               `json:"status"`
		Data   []models.DailyReport `json:"data"`
	}{
		Status: "success",
		Data:   reports,
	}
	utils.WriteJSON(w, response)
}
