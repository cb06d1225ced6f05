package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	tRouter := transactionsRouter()
	mux.Handle("/transactions", tRouter)
	mux.Handle("/transactions/", tRouter)

	mRouter := monobankRouter()
	mux.Handle("/monobank", mRouter)
	mux.Handle("/monobank/", mRouter)

	return mux
}
