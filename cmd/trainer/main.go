package main

import (
	"flag"

	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/repository"
	"moderation-service/internal/training"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfgPath := flag.String("config", "configs/config.yml", "path to config file")
	dataset := flag.String("dataset", "", "path to labeled training samples (JSON array)")
	flag.Parse()

	if *dataset == "" {
		logger.Fatal("Missing -dataset flag")
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	trainer := training.NewTrainer(repository.NewKeywordRepository(db, logger), logger)
	summary, err := trainer.TrainFile(*dataset)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	logger.Info("Moderation model trained",
		zap.Int("samples", summary.TotalSamples),
		zap.Int("keyword_updates", summary.KeywordUpdates),
		zap.Int("phrase_updates", summary.PhraseUpdates))
}
