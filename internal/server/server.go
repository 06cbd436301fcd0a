package server

import (
	"log"
	"strings"
	"time"

	"github.com/faridhnr/skillswap/internal/config"
	"github.com/faridhnr/skillswap/internal/handler"
	"github.com/faridhnr/skillswap/internal/middleware"
	"github.com/faridhnr/skillswap/internal/repository"
	"github.com/faridhnr/skillswap/internal/service"
	"github.com/faridhnr/skillswap/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage disabled: %v", err)
		imageStorage = nil
	}

	var searchSvc service.SearchIndexService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}

		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewSearchIndexService(meiliClient)
	}

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(profileRepo, userRepo, imageStorage, searchSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)

	browseSvc := service.NewBrowseService(profileRepo)
	browseHandler := handler.NewBrowseHandler(browseSvc)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	requestSvc := service.NewRequestService(requestRepo, profileRepo, notificationSvc, redisClient, cfg.RateLimitSendRequest)
	requestHandler := handler.NewRequestHandler(requestSvc)

	dashboardSvc := service.NewDashboardService(profileSvc, requestSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	statSvc := service.NewStatService(userRepo, requestRepo)
	statHandler := handler.NewStatHandler(statSvc)

	searchHandler := handler.NewSearchHandler(searchSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Profile routes
		protected.POST("/profiles", profileHandler.CreateProfile)
		protected.GET("/profiles/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profiles/me", profileHandler.UpdateProfile)
		protected.GET("/profiles/:id", profileHandler.GetProfileByID)

		// Browse
		protected.GET("/browse", browseHandler.Browse)

		// Skill request routes
		protected.POST("/requests", requestHandler.SendRequest)
		protected.GET("/requests/incoming", requestHandler.GetIncomingRequests)
		protected.GET("/requests/sent", requestHandler.GetSentRequests)
		protected.PUT("/requests/:id/respond", requestHandler.RespondToRequest)

		// Dashboard
		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Other protected routes
		protected.GET("/search/token", searchHandler.GetSearchToken)
		protected.GET("/stats", statHandler.GetStats)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
