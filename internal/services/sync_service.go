package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"spendwise/internal/bank"
	"spendwise/internal/models"
	"spendwise/internal/repositories"
	"spendwise/pkg/retry"
	"spendwise/pkg/utils"
)

// syncTimeout bounds one background sync including its backoff sleeps.
const syncTimeout = 2 * time.Minute

// BankAPI is the slice of the monobank client the sync service depends on.
type BankAPI interface {
	SetupWebhook(bankToken, webhookURL string) (json.RawMessage, int, error)
	FetchClientInfo(bankToken string) (*bank.ClientInfo, int, error)
	FetchStatement(bankToken string, from time.Time) ([]bank.StatementItem, int, error)
}

type SyncStore interface {
	UpdateUserBankInfo(ctx context.Context, userID int, firstName, lastName, token string) error
	InsertTransaction(ctx context.Context, t models.Transaction) error
}

// SyncService runs the monobank synchronization pipeline: webhook
// registration on the request path, then profile and statement sync as
// best-effort background work under the retry policy.
type SyncService struct {
	Bank       BankAPI
	Store      SyncStore
	Categories *CategoryCache
	Policy     retry.Policy

	secret        string
	collectorHost string
}

func NewSyncService(bankClient BankAPI, store SyncStore, categories *CategoryCache) *SyncService {
	return &SyncService{
		Bank:          bankClient,
		Store:         store,
		Categories:    categories,
		Policy:        retry.Default(),
		secret:        os.Getenv("JWT_SECRET"),
		collectorHost: os.Getenv("COLLECTOR_HOST"),
	}
}

// RegisterWebhook points the user's monobank account at our collector URL.
// The URL embeds a signed correlation token carrying the user id. The raw
// provider response and status are returned so the handler can answer
// "invalid token" on a non-200 instead of failing the request.
func (s *SyncService) RegisterWebhook(userID int, bankToken string) (json.RawMessage, int, error) {
	correlationToken, err := utils.GenerateCorrelationToken(s.secret, userID)
	if err != nil {
		return nil, 0, err
	}

	webhookURL := fmt.Sprintf("%s/monobank/%s", s.collectorHost, correlationToken)
	return s.Bank.SetupWebhook(bankToken, webhookURL)
}

// SyncUserProfile pulls the account holder's name from monobank and persists
// it with the token onto the user row. Transient failures (non-200, storage)
// go through the retry policy.
func (s *SyncService) SyncUserProfile(ctx context.Context, userID int, bankToken string) error {
	return s.Policy.Do("SyncUserProfile", func() error {
		info, status, err := s.Bank.FetchClientInfo(bankToken)
		if err != nil {
			return retry.Mark(err)
		}
		if status != http.StatusOK {
			return retry.Mark(fmt.Errorf("monobank client-info returned status %d for user=%d", status, userID))
		}

		lastName, firstName := splitFullName(info.Name)
		if err := s.Store.UpdateUserBankInfo(ctx, userID, firstName, lastName, bankToken); err != nil {
			return retry.Mark(err)
		}

		utils.Logger.Infof("User=%d was successfully updated from monobank client info", userID)
		return nil
	}, userID)
}

// SyncUserTransactions imports the current month's statement. Records are
// inserted one by one: a duplicate provider id or a broken record is skipped,
// the batch never aborts.
func (s *SyncService) SyncUserTransactions(ctx context.Context, userID int, bankToken string) error {
	return s.Policy.Do("SyncUserTransactions", func() error {
		from := bank.StartOfMonth(time.Now())
		items, status, err := s.Bank.FetchStatement(bankToken, from)
		if err != nil {
			return retry.Mark(err)
		}
		if status != http.StatusOK {
			return retry.Mark(fmt.Errorf("monobank statement returned status %d for user=%d", status, userID))
		}

		// Importing against an empty taxonomy would mark everything
		// uncategorized, so a failed load aborts the whole attempt instead.
		validCodes, err := s.Categories.Codes(ctx)
		if err != nil {
			return retry.Mark(err)
		}

		imported := 0
		for _, item := range items {
			t := bank.NormalizeStatementItem(userID, item, validCodes)
			if err := s.Store.InsertTransaction(ctx, t); err != nil {
				if errors.Is(err, repositories.ErrDuplicateTransaction) {
					utils.Logger.Debugf("Transaction=%s already imported, skipping", t.ID)
				} else {
					utils.Logger.Errorf("Failed to store transaction=%s: %v", t.ID, err)
				}
				continue
			}
			imported++
		}

		utils.Logger.Infof("Imported %d/%d statement records for user=%d", imported, len(items), userID)
		return nil
	}, userID)
}

// SyncHandle lets tests await background syncs that production fires
// detached. There is no cancellation: syncs run to completion or to retry
// exhaustion.
type SyncHandle struct {
	wg sync.WaitGroup
}

func (h *SyncHandle) Wait() {
	h.wg.Wait()
}

// StartUserSync launches profile and transaction sync concurrently. They
// touch disjoint tables and column sets, so they need no coordination. After
// retry exhaustion nothing is surfaced to the user; a non-retryable failure
// is logged here, by the owner of the goroutines.
func (s *SyncService) StartUserSync(userID int, bankToken string) *SyncHandle {
	handle := &SyncHandle{}

	run := func(name string, op func(context.Context, int, string) error) {
		handle.wg.Add(1)
		go func() {
			defer handle.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
			defer cancel()
			if err := op(ctx, userID, bankToken); err != nil {
				utils.Logger.Errorf("%s for user=%d failed: %v", name, userID, err)
			}
		}()
	}

	run("SyncUserProfile", s.SyncUserProfile)
	run("SyncUserTransactions", s.SyncUserTransactions)
	return handle
}

// splitFullName splits monobank's "Last First" name field. Only the first
// token is treated as the last name so multi-word first names survive.
func splitFullName(name string) (lastName, firstName string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	lastName = parts[0]
	if len(parts) > 1 {
		firstName = parts[1]
	}
	return lastName, firstName
}
