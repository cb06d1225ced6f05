package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// MCCCodesKey holds the set of valid merchant category codes. No expiry:
	// the entry is overwritten by the daily refresh job and reloaded on
	// demand if deleted.
	MCCCodesKey = "mcc-codes"

	// MonthReportExpire bounds how long a past month's report is memoized.
	// Past months are immutable, the TTL only caps memory usage.
	MonthReportExpire = 30 * 24 * time.Hour
)

func MonthReportKey(userID, year, month int) string {
	return fmt.Sprintf("month-report--%d-%d-%d", userID, month, year)
}

// New builds an in-memory cache. The janitor sweeps expired month reports
// every 12 hours.
func New() *gocache.Cache {
	return gocache.New(gocache.NoExpiration, 12*time.Hour)
}

var shared = New()

// Shared is the process-wide cache instance the handlers and cron jobs use.
func Shared() *gocache.Cache {
	return shared
}
