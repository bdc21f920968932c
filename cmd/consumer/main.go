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

	// report generation and notification fan-out consumers
	if err := app.RunConsumer(); err != nil {
		logger.Fatal("logistics consumer stopped", zap.Error(err))
	}
}
