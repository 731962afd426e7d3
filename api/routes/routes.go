package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/subspace-app/reward-backend/internal/config"
	"github.com/subspace-app/reward-backend/internal/handlers"
	"github.com/subspace-app/reward-backend/internal/middleware"
)

// HandlerDependencies holds the handlers the router needs
type HandlerDependencies struct {
	SpinHandler    *handlers.SpinHandler
	AccountHandler *handlers.AccountHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Spin routes
		spins := api.Group("/spins")
		{
			spins.POST("", deps.SpinHandler.Spin)
			spins.GET("", deps.SpinHandler.GetSpins)
			spins.GET("/count", deps.SpinHandler.GetSpinCount)
			spins.GET("/:id", deps.SpinHandler.GetSpinByID)
		}

		// Account routes
		accounts := api.Group("/accounts")
		{
			accounts.POST("", deps.AccountHandler.CreateAccount)
			accounts.GET("", deps.AccountHandler.GetAccounts)
			accounts.GET("/count", deps.AccountHandler.GetAccountCount)
			accounts.GET("/:id", deps.AccountHandler.GetAccountByID)
			accounts.GET("/username/:username", deps.AccountHandler.GetAccountByUsername)
		}
	}

	return router
}
