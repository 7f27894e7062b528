package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/internos/internos-api/internal/cache"
	"github.com/internos/internos-api/internal/config"
	"github.com/internos/internos-api/internal/database"
	"github.com/internos/internos-api/internal/handlers"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/services"
	"github.com/internos/internos-api/internal/storage"

	"github.com/internos/internos-api/internal/auth"
	"github.com/internos/internos-api/internal/middleware"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	db := database.GetDB()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}

	tokens := auth.NewTokenManager([]byte(cfg.JWTKey), cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	uploads := storage.NewUploadStore(cfg.UploadsDir)

	uploadsRoot, err := uploads.Root()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	var convCache cache.ConversationCache
	if cfg.RedisAddr != "" {
		convCache = cache.NewRedisConversationCache(cfg.RedisAddr)
		log.Info().Str("addr", cfg.RedisAddr).Msg("conversation cache enabled")
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, activityRepo, uploads)
	commentService := services.NewCommentService(commentRepo)
	activityService := services.NewActivityService(activityRepo)
	messageService := services.NewMessageService(messageRepo, userRepo, convCache)
	dashboardService := services.NewDashboardService(taskRepo, userRepo, commentRepo, activityRepo)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService, uploads)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	activityHandler := handlers.NewActivityHandler(activityService)
	messageHandler := handlers.NewMessageHandler(messageService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Static("/uploads", uploadsRoot)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(tokens))
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", profileHandler.Me)
				profile.PUT("/me", profileHandler.UpdateMe)
				profile.POST("/change-password", profileHandler.ChangePassword)
				profile.POST("/photo", profileHandler.UploadPhoto)
			}

			adminOnly := middleware.RequireRoles(models.RoleAdmin)
			adminOrMentor := middleware.RequireRoles(models.RoleAdmin, models.RoleMentor)

			users := protected.Group("/users")
			{
				users.GET("", adminOnly, userHandler.List)
				users.GET("/interns", adminOrMentor, userHandler.ListInterns)
				users.GET("/mentors", userHandler.ListMentors)
				users.GET("/:id", adminOnly, userHandler.Get)
				users.POST("", adminOnly, userHandler.Create)
				users.PUT("/:id", adminOnly, userHandler.Update)
				users.GET("/:id/dependencies", adminOnly, userHandler.Dependencies)
				users.DELETE("/:id", adminOnly, userHandler.Delete)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.GET("/my-tasks", taskHandler.ListMyTasks)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.POST("", adminOrMentor, taskHandler.CreateTask)
				tasks.PATCH("/:id/status", adminOrMentor, taskHandler.UpdateStatus)
				tasks.PATCH("/:id/submit", taskHandler.SubmitTask)
				tasks.PATCH("/:id/complete", taskHandler.SubmitTask)
				tasks.PATCH("/:id/review", adminOrMentor, taskHandler.ReviewTask)
				tasks.DELETE("/:id", adminOrMentor, taskHandler.DeleteTask)
				tasks.POST("/:id/delete", adminOrMentor, taskHandler.DeleteTask)
				tasks.POST("/:id/submission", taskHandler.UploadSubmission)
				tasks.GET("/:id/submissions", taskHandler.ListSubmissions)
			}

			comments := protected.Group("/comments")
			{
				comments.POST("", commentHandler.AddComment)
				comments.GET("/task/:taskId", commentHandler.ListByTask)
			}

			activity := protected.Group("/activity")
			{
				activity.GET("", activityHandler.List)
			}

			messages := protected.Group("/messages")
			{
				messages.POST("", messageHandler.Send)
				messages.GET("/conversations", messageHandler.ListConversations)
				messages.POST("/conversations", messageHandler.StartConversation)
				messages.GET("/conversations/:conversationId", messageHandler.ConversationMessages)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", adminOnly, dashboardHandler.Stats)
			}
		}
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
