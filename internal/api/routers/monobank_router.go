package routers

import (
	"net/http"

	"spendwise/internal/api/handlers/monobank"
)

func monobankRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/monobank", monobank.ConnectMonobank)

	// Unauthenticated provider callback, routed by the correlation token.
	mux.HandleFunc("/monobank/{token}", monobank.MonobankWebhook)

	return mux
}
