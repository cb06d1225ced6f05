package cron

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"

	"spendwise/internal/cache"
	"spendwise/internal/repositories"
	"spendwise/internal/services"
	"spendwise/pkg/utils"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at midnight: reload the MCC code set so taxonomy edits
	// become visible without a restart.
	_, err := c.AddFunc("0 0 * * *", func() {
		if err := RefreshMCCCodes(db); err != nil {
			utils.Logger.Errorf("Cron job failed to refresh mcc codes: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule mcc refresh job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (mcc code refresh daily at midnight)")
	return c
}

// RefreshMCCCodes overwrites the cached valid-code set from the database.
func RefreshMCCCodes(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := repositories.NewStore(db)
	categories := services.NewCategoryCache(store, cache.Shared())
	codes, err := categories.Refresh(ctx)
	if err != nil {
		return err
	}

	utils.Logger.Infof("Refreshed mcc code cache, %d codes known", len(codes))
	return nil
}
