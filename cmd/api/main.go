package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/subspace-app/reward-backend/api/routes"
	"github.com/subspace-app/reward-backend/internal/config"
	"github.com/subspace-app/reward-backend/internal/handlers"
	"github.com/subspace-app/reward-backend/internal/repositories"
	mongorepo "github.com/subspace-app/reward-backend/internal/repositories/mongodb"
	"github.com/subspace-app/reward-backend/internal/services"
	"github.com/subspace-app/reward-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var accountRepo repositories.AccountRepository = mongorepo.NewAccountRepository(db)
	var spinRepo repositories.SpinRepository = mongorepo.NewSpinRepository(db)

	// Services
	spinService := services.NewSpinService(spinRepo, accountRepo)
	accountService := services.NewAccountService(accountRepo)

	// Handlers
	spinHandler := handlers.NewSpinHandler(spinService)
	accountHandler := handlers.NewAccountHandler(accountService)

	handlerDeps := routes.HandlerDependencies{
		SpinHandler:    spinHandler,
		AccountHandler: accountHandler,
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
