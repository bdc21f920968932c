package main

import (
	"go-logistics/internal/app"
	"go-logistics/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	// outbox relay plus the late-delivery sweep
	if err := app.RunWorker(); err != nil {
		logger.Fatal("logistics worker stopped", zap.Error(err))
	}
}
