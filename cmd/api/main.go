package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stockforum/internal/config"
	"stockforum/internal/database"
	"stockforum/internal/handlers"
	"stockforum/internal/logger"
	"stockforum/internal/middleware"
	"stockforum/internal/services"
	"stockforum/internal/validator"
)

// @title           Stockforum API
// @version         1.0
// @description     Community backend for discussing stocks: listings, conversations, portfolio posts, threaded comments, and voting.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	stockService := services.NewStockService(db)
	conversationService := services.NewConversationService(db)
	portfolioService := services.NewPortfolioService(db)
	articleService := services.NewArticleService(db)
	commentService := services.NewCommentService(db)
	voteService := services.NewVoteService(db)
	imageService := services.NewImageService(appConfig.ImgurClientID)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	stockHandler := handlers.NewStockHandler(stockService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, imageService)
	articleHandler := handlers.NewArticleHandler(articleService)
	commentHandler := handlers.NewCommentHandler(commentService)
	voteHandler := handlers.NewVoteHandler(voteService)
	seoHandler := handlers.NewSEOHandler(db)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.SessionHeader)

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

	// Crawler surface
	router.GET("/robots.txt", seoHandler.RobotsTxt)
	router.GET("/sitemap.xml", seoHandler.SitemapXML)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/stocks", stockHandler.ListStocks)
	v1.GET("/stocks/:symbol", stockHandler.GetStockBySymbol)
	v1.GET("/conversations", conversationHandler.ListConversations)
	v1.GET("/conversations/:id", conversationHandler.GetConversationByID)
	v1.GET("/portfolio/posts", portfolioHandler.ListPosts)
	v1.GET("/portfolio/posts/:id", portfolioHandler.GetPostByID)
	v1.GET("/articles", articleHandler.ListArticles)
	v1.GET("/articles/:slug", articleHandler.GetArticleBySlug)

	// Comment and vote routes run behind the identity resolver so both
	// authenticated and anonymous callers are served.
	open := v1.Group("/")
	open.Use(middleware.ResolveIdentity())
	handlers.RegisterContentRoutes(open, commentHandler, voteHandler)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/stocks", stockHandler.CreateStock)
	protected.PATCH("/stocks/:symbol", stockHandler.UpdateStock)
	protected.POST("/conversations", conversationHandler.CreateConversation)
	protected.DELETE("/conversations/:id", conversationHandler.DeleteConversation)
	protected.POST("/portfolio/posts", portfolioHandler.CreatePost)
	protected.DELETE("/portfolio/posts/:id", portfolioHandler.DeletePost)
	protected.POST("/portfolio/uploads", portfolioHandler.UploadImage)
	protected.POST("/articles", articleHandler.CreateArticle)

	log.Infof("Starting stockforum backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
