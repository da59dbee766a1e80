package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/sosiol/sosiol/internal/api/middleware"
)

// RouteConfig holds the per-route middleware configuration
type RouteConfig struct {
	Auth middleware.AuthConfig

	// WriteLimit guards routes that write to the database or storage. Nil disables it.
	WriteLimit gin.HandlerFunc

	// UploadDir is served under /uploads when set
	UploadDir string
}

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, cfg RouteConfig) {
	// Health check endpoint (no auth, no prefix)
	router.GET("/health", handler.HealthCheck)

	if cfg.UploadDir != "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	writeLimit := cfg.WriteLimit
	if writeLimit == nil {
		writeLimit = func(c *gin.Context) { c.Next() }
	}

	api := router.Group("/api")
	{
		// Creator endpoints (public read access, profile writes are signed by the wallet)
		creators := api.Group("/creators")
		creators.GET("", handler.ListCreators)
		creators.GET("/username/:username", handler.GetCreatorByUsername)
		creators.GET("/wallet/:walletAddress", handler.GetCreatorByWallet)
		creators.POST("", writeLimit, handler.UpsertCreator)
		creators.GET("/:walletAddress/dashboard", handler.GetDashboard)
		creators.GET("/:walletAddress/wallet-info", handler.GetWalletInfo)

		// Self-payment cleanup (requires authentication)
		creators.POST("/:walletAddress/cleanup", middleware.Auth(cfg.Auth), handler.CleanupSelfTips)

		// Tip endpoints
		tips := api.Group("/tips")
		tips.POST("", writeLimit, handler.CreateTip)
		tips.GET("/creator/:walletAddress", handler.ListTipsByCreator)
		tips.GET("/fan/:walletAddress", handler.ListTipsByFan)

		// On-chain transaction lookup
		api.GET("/transactions/:signature", handler.GetTransaction)

		// Avatar upload
		api.POST("/upload/avatar", writeLimit, handler.UploadAvatar)

		// Admin endpoints (requires authentication)
		api.POST("/admin/reconcile", middleware.Auth(cfg.Auth), handler.ReconcileTotals)
	}
}
