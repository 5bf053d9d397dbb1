package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moderation-service/internal/handler"
	"moderation-service/internal/middleware"
	"moderation-service/internal/moderation"
	"moderation-service/internal/pipeline"
	"moderation-service/internal/romantic"
	"moderation-service/internal/service"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger

	pipeline    *pipeline.Pipeline
	moderator   *moderation.Moderator
	patterns    *moderation.PatternStore
	engine      *moderation.Engine
	matcher     *romantic.Matcher
	authService service.AuthService
}

func NewServer(
	p *pipeline.Pipeline,
	moderator *moderation.Moderator,
	patterns *moderation.PatternStore,
	engine *moderation.Engine,
	matcher *romantic.Matcher,
	authService service.AuthService,
	logger *zap.Logger,
) *Server {
	router := gin.Default()

	s := &Server{
		router:      router,
		logger:      logger,
		pipeline:    p,
		moderator:   moderator,
		patterns:    patterns,
		engine:      engine,
		matcher:     matcher,
		authService: authService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	chatHandler := handler.NewChatHandler(s.pipeline, s.logger)
	moderationHandler := handler.NewModerationHandler(s.moderator, s.patterns, s.engine, s.logger)
	romanticHandler := handler.NewRomanticHandler(s.matcher, s.logger)
	authHandler := handler.NewAuthHandler(s.authService, s.logger)

	s.router.Use(corsMiddleware())

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Public classification surface
	s.router.POST("/api/chat", chatHandler.Chat)
	s.router.POST("/api/moderation/check", moderationHandler.Check)
	s.router.POST("/api/romantic", romanticHandler.Process)
	s.router.GET("/api/romantic/stats", romanticHandler.Stats)
	s.router.GET("/api/romantic/random/:category", romanticHandler.RandomByCategory)

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.RegisterAdmin)
	authGroup.POST("/login", authHandler.Login)

	// Moderator/admin routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)
		authRequired.POST("/moderation/analyze", moderationHandler.Analyze)
		authRequired.POST("/moderation/patterns", moderationHandler.AddPattern)
		authRequired.GET("/moderation/stats", moderationHandler.Stats)
		authRequired.GET("/moderation/flagged", moderationHandler.Flagged)
		authRequired.POST("/moderation/detect", moderationHandler.Detect)
		authRequired.PUT("/moderation/threshold", moderationHandler.SetThreshold)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
