package services

import (
	"context"
	"testing"
	"time"

	"spendwise/internal/cache"
	"spendwise/internal/models"
)

type fakeReportStore struct {
	monthCalls int
	dailyCalls int
	reports    []models.CategoryReport
	daily      []models.DailyReport
}

func (f *fakeReportStore) MonthReport(ctx context.Context, userID, year, month int) ([]models.CategoryReport, error) {
	f.monthCalls++
	return f.reports, nil
}

func (f *fakeReportStore) DailyReports(ctx context.Context, userID int, start, end time.Time) ([]models.DailyReport, error) {
	f.dailyCalls++
	return f.daily, nil
}

func pastMonth() (int, int) {
	previous := time.Now().AddDate(0, -1, 0)
	return previous.Year(), int(previous.Month())
}

func TestMonthReportCurrentMonthBypassesCache(t *testing.T) {
	store := &fakeReportStore{reports: []models.CategoryReport{{Name: "Products", Amount: "45.5"}}}
	s := NewReportService(store, cache.New())

	now := time.Now()
	year, month := now.Year(), int(now.Month())

	for i := 0; i < 2; i++ {
		if _, err := s.MonthReport(context.Background(), 7, year, month); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if store.monthCalls != 2 {
		t.Fatalf("current month must recompute every time, got %d storage calls", store.monthCalls)
	}
	if _, ok := s.Cache.Get(cache.MonthReportKey(7, year, month)); ok {
		t.Fatal("current month must never be written to cache")
	}
}

func TestMonthReportPastMonthWriteThrough(t *testing.T) {
	store := &fakeReportStore{reports: []models.CategoryReport{{Name: "Products", Info: "food", Amount: "120"}}}
	s := NewReportService(store, cache.New())

	year, month := pastMonth()

	first, err := s.MonthReport(context.Background(), 7, year, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.MonthReport(context.Background(), 7, year, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.monthCalls != 1 {
		t.Fatalf("second read must be served from cache, got %d storage calls", store.monthCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0] != first[0] {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}
}

func TestMonthReportEmptyResultNotCached(t *testing.T) {
	store := &fakeReportStore{}
	s := NewReportService(store, cache.New())

	year, month := pastMonth()

	for i := 0; i < 2; i++ {
		reports, err := s.MonthReport(context.Background(), 7, year, month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != 0 {
			t.Fatalf("expected empty report, got %v", reports)
		}
	}

	if store.monthCalls != 2 {
		t.Fatalf("empty results must not be cached, got %d storage calls", store.monthCalls)
	}

	// Backfilled transactions become visible on the next read.
	store.reports = []models.CategoryReport{{Name: "Travel", Amount: "300"}}
	reports, err := s.MonthReport(context.Background(), 7, year, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("backfilled data must be served, got %v", reports)
	}
}

func TestMonthReportCacheIsPerUserAndPeriod(t *testing.T) {
	store := &fakeReportStore{reports: []models.CategoryReport{{Name: "Products", Amount: "10"}}}
	s := NewReportService(store, cache.New())

	year, month := pastMonth()

	if _, err := s.MonthReport(context.Background(), 7, year, month); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.MonthReport(context.Background(), 8, year, month); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.monthCalls != 2 {
		t.Fatalf("different users must not share cache entries, got %d storage calls", store.monthCalls)
	}
}

func TestDailyReportsFillEveryDayOfPeriod(t *testing.T) {
	store := &fakeReportStore{daily: []models.DailyReport{
		{Date: "2021.03.02", Amount: "45.5"},
		{Date: "2021.03.05", Amount: "120"},
	}}
	s := NewReportService(store, cache.New())

	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2021, 3, 7, 12, 0, 0, 0, time.Local)

	reports, err := s.DailyReports(context.Background(), 7, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.dailyCalls != 1 {
		t.Fatalf("expected a single storage call, got %d", store.dailyCalls)
	}

	want := []models.DailyReport{
		{Date: "2021.03.01", Amount: "0"},
		{Date: "2021.03.02", Amount: "45.5"},
		{Date: "2021.03.03", Amount: "0"},
		{Date: "2021.03.04", Amount: "0"},
		{Date: "2021.03.05", Amount: "120"},
		{Date: "2021.03.06", Amount: "0"},
		{Date: "2021.03.07", Amount: "0"},
	}
	if len(reports) != len(want) {
		t.Fatalf("expected %d days, got %d: %v", len(want), len(reports), reports)
	}
	for i, r := range reports {
		if r != want[i] {
			t.Errorf("day #%d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestDailyReportsQuietPeriodIsAllZeros(t *testing.T) {
	store := &fakeReportStore{}
	s := NewReportService(store, cache.New())

	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2021, 3, 3, 0, 0, 0, 0, time.Local)

	reports, err := s.DailyReports(context.Background(), 7, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 days, got %d: %v", len(reports), reports)
	}
	for _, r := range reports {
		if r.Amount != "0" {
			t.Errorf("day %s should be zero, got %q", r.Date, r.Amount)
		}
	}
}
