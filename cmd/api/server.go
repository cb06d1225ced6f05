package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	mw "spendwise/internal/api/middlewares"
	"spendwise/internal/api/routers"
	"spendwise/internal/repositories/sqlconnect"
	"spendwise/pkg/cron"
	"spendwise/pkg/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		return
	}

	utils.InitLogger()

	err = sqlconnect.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	cronJobs := cron.StartCronJob(sqlconnect.DB)
	defer cronJobs.Stop()

	port := os.Getenv("SERVER_PORT")

	router := routers.MainRouter()
	// The provider callback authenticates with its correlation token, not a
	// user session.
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/monobank/")

	server := &http.Server{
		Addr:    port,
		Handler: jwtMiddleware(router),
	}

	fmt.Println("Server is running on port", port)
	err = server.ListenAndServe()
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
