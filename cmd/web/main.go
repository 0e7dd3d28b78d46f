package main

import (
	"workhub_backend/internal/app"
	"workhub_backend/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment")
	}

	app.Run()
}
