package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/psgtech/campusfacility/internal/config"
	"github.com/psgtech/campusfacility/internal/handler"
	"github.com/psgtech/campusfacility/internal/middleware"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/database"
	"github.com/psgtech/campusfacility/pkg/storage"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set; rate limiting and view dedup fast path disabled")
	}

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	var searchService service.SearchService
	if cfg.MeiliMasterKey != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchService = service.NewSearchService(meiliClient)
	} else {
		log.Println("MEILI_MASTER_KEY not set; announcement search disabled")
	}

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	authService := service.NewAuthService(userRepo, rdb, cfg.JWTSecret, cfg.JWTTTL, cfg.LoginRateLimit)
	authHandler := handler.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo)
	adminHandler := handler.NewAdminHandler(userService)

	bookingService := service.NewBookingService(bookingRepo)
	bookingHandler := handler.NewBookingHandler(bookingService)

	issueService := service.NewIssueService(issueRepo, fileStorage, cfg.MaxUploadSizeBytes, cfg.MaxUploadFiles)
	issueHandler := handler.NewIssueHandler(issueService)

	announcementService := service.NewAnnouncementService(announcementRepo, fileStorage, searchService, rdb, cfg.MaxUploadSizeBytes, cfg.MaxUploadFiles)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)

	roomHandler := handler.NewRoomHandler()

	dashboardService := service.NewDashboardService(userRepo, bookingRepo, issueRepo, announcementRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Public reference data and the public announcement view.
		rooms := api.Group("/rooms")
		rooms.GET("/blocks", roomHandler.ListBlocks)
		rooms.GET("/blocks/:code", roomHandler.GetBlock)
		rooms.GET("/blocks/:code/rooms", roomHandler.ListRoomsByBlock)
		rooms.GET("/:code", roomHandler.GetRoom)
		rooms.GET("/:code/components", roomHandler.GetRoomComponents)

		announcements := api.Group("/announcements")
		announcements.GET("", authMiddleware.OptionalAuth(), announcementHandler.List)
		announcements.GET("/:id", authMiddleware.OptionalAuth(), announcementHandler.Get)
	}

	authed := api.Group("")
	authed.Use(authMiddleware.RequireAuth())
	{
		profile := authed.Group("/profile")
		profile.GET("", authHandler.GetProfile)
		profile.PUT("", authHandler.UpdateProfile)
		profile.PUT("/password", authHandler.ChangePassword)

		bookings := authed.Group("/bookings")
		bookings.GET("/availability", bookingHandler.CheckAvailability)
		bookings.POST("", authMiddleware.RequireRoles(model.RoleStudent, model.RoleClassRep), bookingHandler.Create)
		bookings.GET("/mine", bookingHandler.ListOwn)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.DELETE("/:id", bookingHandler.Delete)

		issues := authed.Group("/issues")
		issues.POST("", authMiddleware.RequireRoles(model.RoleStudent, model.RoleClassRep), issueHandler.Create)
		issues.GET("/mine", issueHandler.ListOwn)
		issues.GET("/:id", issueHandler.Get)
		issues.DELETE("/:id", issueHandler.Delete)

		authed.GET("/dashboard/me", dashboardHandler.StudentStats)

		admin := authed.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PATCH("/users/:id/approve", adminHandler.ApproveUser)
			admin.DELETE("/users/:id/reject", adminHandler.RejectUser)
			admin.PATCH("/users/:id/activate", adminHandler.ActivateUser)
			admin.PATCH("/users/:id/deactivate", adminHandler.DeactivateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/bookings", bookingHandler.ListAll)
			admin.PATCH("/bookings/:id/approve", bookingHandler.Approve)
			admin.PATCH("/bookings/:id/reject", bookingHandler.Reject)
			admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			admin.GET("/issues", issueHandler.ListAll)
			admin.PATCH("/issues/:id/approve", issueHandler.Approve)
			admin.PATCH("/issues/:id/resolve", issueHandler.Resolve)
			admin.PATCH("/issues/:id/reject", issueHandler.Reject)
			admin.PATCH("/issues/:id/status", issueHandler.UpdateStatus)
			admin.GET("/issues/stats", issueHandler.Stats)

			admin.POST("/announcements", announcementHandler.Create)
			admin.PUT("/announcements/:id", announcementHandler.Update)
			admin.DELETE("/announcements/:id", announcementHandler.Delete)
			admin.PATCH("/announcements/:id/pin", announcementHandler.TogglePin)
			admin.GET("/announcements/stats", announcementHandler.Stats)

			admin.GET("/dashboard", dashboardHandler.Overview)
			admin.GET("/dashboard/analytics", dashboardHandler.Analytics)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Booking{},
		&model.Issue{},
		&model.Announcement{},
		&model.AnnouncementView{},
		&model.Attachment{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		RollNo:       "ADMIN001",
		Email:        "facilities@psgtech.ac.in",
		Name:         "Facilities Administrator",
		PasswordHash: string(hashedPasswordBytes),
		Role:         model.RoleAdmin,
		IsActive:     true,
		IsApproved:   true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: facilities@psgtech.ac.in")
	log.Println("   Password: admin123")

	return nil
}
