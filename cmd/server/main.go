package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/knowledge"
	"moderation-service/internal/moderation"
	"moderation-service/internal/pipeline"
	"moderation-service/internal/repository"
	"moderation-service/internal/romantic"
	"moderation-service/internal/server"
	"moderation-service/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	cfgPath := flag.String("config", "configs/config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	service.SetJWTSecret(cfg.Auth.JWTSecret)

	// Database connection
	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	flaggedRepo := repository.NewFlaggedRepository(db, logger)
	keywordRepo := repository.NewKeywordRepository(db, logger)
	authRepo := repository.NewAuthRepository(db, logger)

	// Knowledge base feeds the romantic corpus and the fallback responder
	kb, err := knowledge.LoadStore(cfg.Data.KnowledgeBase, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	// Moderation: curated patterns plus the trained keyword engine
	patternStore := moderation.NewPatternStore()
	moderator := moderation.NewModerator(patternStore, flaggedRepo, logger)

	keywordStats, err := keywordRepo.GetAll()
	if err != nil {
		logger.Warn("Failed to load keyword stats, engine starts untrained", zap.Error(err))
	}
	trainedPhrases, err := keywordRepo.GetPhrases()
	if err != nil {
		logger.Warn("Failed to load trained phrases", zap.Error(err))
	}
	engine := moderation.NewEngine(keywordStats, trainedPhrases, logger)
	engine.SetConfidenceThreshold(cfg.Moderation.ConfidenceThreshold)

	// Romantic matcher over the trained corpus
	matcher := romantic.NewMatcher(kb.RomanticEntries(), cfg.Romantic.MatchThreshold, logger)
	logger.Info("Romantic corpus loaded",
		zap.Int("entries", matcher.Statistics().TotalRomanticResponses))

	// Classification pipeline with the knowledge-base fallback
	responder := knowledge.NewResponder(kb, logger)
	pipe := pipeline.NewPipeline(moderator, matcher, responder, logger)

	authService := service.NewAuthService(authRepo, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(pipe, moderator, patternStore, engine, matcher, authService, logger)
	if err := srv.Run(ctx, cfg.Server.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped.")
}
