package main

import (
	"dangnyang_backend/internal/app"
	"dangnyang_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
