package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trustsitter/internal/config"
	"trustsitter/internal/db"
	"trustsitter/internal/router"
	"trustsitter/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dbConn, err := db.Init(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to connect db", zap.Error(err))
	}

	email := utils.NewSMTPClient(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail)

	r := router.New(dbConn, logger, cfg, email)
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
