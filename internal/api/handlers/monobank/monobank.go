package monobank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"spendwise/internal/bank"
	"spendwise/internal/cache"
	"spendwise/internal/repositories"
	"spendwise/internal/repositories/sqlconnect"
	"spendwise/internal/services"
	"spendwise/pkg/utils"
)

func newSyncService() *services.SyncService {
	store := repositories.NewStore(sqlconnect.DB)
	categories := services.NewCategoryCache(store, cache.Shared())
	return services.NewSyncService(bank.NewClient(), store, categories)
}

// ConnectMonobank accepts the user's monobank token, registers the collector
// webhook synchronously, and on success kicks off profile and statement sync
// in the background before responding.
func ConnectMonobank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if sqlconnect.DB == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID := int(idFloat)

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		utils.WriteError(w, "required field token is missing", http.StatusBadRequest)
		return
	}

	s := newSyncService()
	providerBody, status, err := s.RegisterWebhook(userID, body.Token)
	if err != nil {
		utils.Logger.Errorf("Webhook registration failed for user=%d: %v", userID, err)
		utils.WriteError(w, "failed to register monobank webhook", http.StatusInternalServerError)
		return
	}
	if status != http.StatusOK {
		utils.Logger.Warnf("Monobank rejected webhook for user=%d: status=%d body=%s", userID, status, providerBody)
		utils.WriteError(w, "invalid monobank token", http.StatusBadRequest)
		return
	}

	// Best effort from here on: the user already has their response.
	s.StartUserSync(userID, body.Token)

	utils.WriteJSON(w, map[string]string{
		"status":  "success",
		"message": "monobank webhook registered, synchronization started",
	})
}

// MonobankWebhook receives statement events pushed by monobank. The path
// token is the signed correlation token minted at registration time.
func MonobankWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if sqlconnect.DB == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, err := utils.ParseCorrelationToken(os.Getenv("JWT_SECRET"), r.PathValue("token"))
	if err != nil {
		utils.Logger.Warnf("Webhook callback with bad correlation token: %v", err)
		utils.WriteError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			StatementItem bank.StatementItem `json:"statementItem"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.WriteError(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if event.Type != "StatementItem" {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ignored"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	store := repositories.NewStore(sqlconnect.DB)
	validCodes, err := services.NewCategoryCache(store, cache.Shared()).Codes(ctx)
	if err != nil {
		utils.Logger.Errorf("Failed to load mcc codes for webhook event: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	t := bank.NormalizeStatementItem(userID, event.Data.StatementItem, validCodes)
	if err := store.InsertTransaction(ctx, t); err != nil && !errors.Is(err, repositories.ErrDuplicateTransaction) {
		utils.Logger.Errorf("Failed to store webhook transaction=%s: %v", t.ID, err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "success"})
}
