package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"tallybook/internal/config"
	"tallybook/internal/database"
	"tallybook/internal/handlers"
	"tallybook/internal/llm"
	"tallybook/internal/logger"
	"tallybook/internal/middleware"
	"tallybook/internal/services"
	"tallybook/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Model back-ends, in fallback order. With no keys configured the
	// chain is empty and the engine runs keyword-only.
	var clients []llm.Client
	if appConfig.OpenRouterAPIKey != "" {
		clients = llm.NewOpenRouterClients(appConfig.OpenRouterAPIKey, appConfig.OpenRouterModels)
	}
	if appConfig.GeminiAPIKey != "" {
		clients = append(clients, llm.NewGeminiClient(appConfig.GeminiAPIKey, appConfig.GeminiModel))
	}
	chain := llm.NewChain(appConfig.ModelTimeout, clients...)
	if chain.Empty() {
		log.Info("No model back-ends configured, running keyword-only classification")
	}

	// Initialize services
	db := dbManager.DB()
	permissionService := services.NewPermissionService(db)
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db, permissionService)
	orgService := services.NewOrgService(db, accountService)
	profileService := services.NewBusinessProfileService(db, permissionService)
	proposalService := services.NewProposalService(db, permissionService, auditService)
	suggestionService := services.NewSuggestionService()
	classifier := services.NewClassifier(chain)
	enrichmentService := services.NewEnrichmentService(chain)
	pipeline := services.NewPipelineService(db, accountService, profileService,
		classifier, suggestionService, enrichmentService, proposalService)
	defer pipeline.Close()
	transactionService := services.NewTransactionService(db, permissionService, auditService, pipeline)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	orgHandler := handlers.NewOrgHandler(orgService)
	accountHandler := handlers.NewAccountHandler(accountService)
	profileHandler := handlers.NewBusinessProfileHandler(profileService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	proposalHandler := handlers.NewProposalHandler(proposalService, suggestionService,
		accountService, profileService, transactionService, pipeline)
	feedHandler := handlers.NewFeedHandler(transactionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Bank feed routes, API-key authenticated
	feed := v1.Group("/feed")
	feed.Use(middleware.FeedAuthMiddleware(appConfig.FeedAPIKey))
	feed.POST("/orgs/:orgId/transactions", feedHandler.IngestBatch)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Org routes
	protected.POST("/orgs", orgHandler.CreateOrg)
	orgs := protected.Group("/orgs/:orgId")
	orgs.GET("", orgHandler.GetOrg)
	orgs.POST("/members", orgHandler.AddMember)

	// Business profile routes
	orgs.GET("/business-profile", profileHandler.GetProfile)
	orgs.PUT("/business-profile", profileHandler.UpsertProfile)

	// Account routes
	accounts := orgs.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)

	// Transaction routes
	transactions := orgs.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.POST("/:id/suggest", proposalHandler.Suggest)
	transactions.GET("/:id/alternatives", proposalHandler.Alternatives)

	// Proposal routes
	proposals := orgs.Group("/proposals")
	proposals.GET("", proposalHandler.ListProposals)
	proposals.GET("/:id", proposalHandler.GetProposal)
	proposals.POST("/:id/approve", proposalHandler.Approve)
	proposals.POST("/:id/reject", proposalHandler.Reject)

	// Ledger routes
	orgs.GET("/entries/:id", proposalHandler.GetFinalEntry)

	log.Infof("Starting Tallybook backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
