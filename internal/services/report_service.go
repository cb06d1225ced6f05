package services

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"spendwise/internal/cache"
	"spendwise/internal/models"
	"spendwise/pkg/utils"
)

type ReportStore interface {
	MonthReport(ctx context.Context, userID, year, month int) ([]models.CategoryReport, error)
	DailyReports(ctx context.Context, userID int, start, end time.Time) ([]models.DailyReport, error)
}

// ReportService computes spending reports, memoizing closed months.
type ReportService struct {
	Store ReportStore
	Cache *gocache.Cache
}

func NewReportService(store ReportStore, c *gocache.Cache) *ReportService {
	return &ReportService{Store: store, Cache: c}
}

// MonthReport returns per-category outgoing totals for the month. The
// current month is still mutating and is always recomputed; a past month is
// served from cache when possible and written through with a 30-day TTL.
// Empty results are never cached, so backfilled imports for a past month
// become visible on the next read.
func (s *ReportService) MonthReport(ctx context.Context, userID, year, month int) ([]models.CategoryReport, error) {
	now := time.Now()
	if now.Year() == year && int(now.Month()) == month {
		return s.Store.MonthReport(ctx, userID, year, month)
	}

	key := cache.MonthReportKey(userID, year, month)
	if cached, ok := s.Cache.Get(key); ok {
		if reports, ok := cached.([]models.CategoryReport); ok {
			return reports, nil
		}
	}

	reports, err := s.Store.MonthReport(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	if len(reports) > 0 {
		s.Cache.Set(key, reports, cache.MonthReportExpire)
	}
	return reports, nil
}

// DailyReports returns per-day outgoing totals for a period. Every day of
// the period appears in the result; days without outgoing transactions carry
// amount "0". Periods are arbitrary, so there is nothing worth memoizing.
func (s *ReportService) DailyReports(ctx context.Context, userID int, start, end time.Time) ([]models.DailyReport, error) {
	rows, err := s.Store.DailyReports(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]string, len(rows))
	for _, row := range rows {
		totals[row.Date] = row.Amount
	}

	days := utils.DaysPeriod(start, end)
	reports := make([]models.DailyReport, 0, len(days))
	for _, day := range days {
		date := day.Format(utils.DateFormat)
		amount, ok := totals[date]
		if !ok {
			amount = "0"
		}
		reports = append(reports, models.DailyReport{Date: date, Amount: amount})
	}
	return reports, nil
}
