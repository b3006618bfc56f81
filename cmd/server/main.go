package main

import (
	_ "twistlist/docs"
	"twistlist/internal/config"
	"twistlist/internal/logging"
	"twistlist/internal/server"
)

// @title           TwistList API
// @version         1.0
// @description     Multi-tenant task and project management API.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	logging.Init(cfg.LogFile)

	s, err := server.Init(cfg)
	if err != nil {
		logging.Logger.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
