package main

import (
	"log"

	"smart_health/internal/config"
	"smart_health/internal/logger"
	"smart_health/internal/ml"
	"smart_health/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and migrate the schema
	config.InitDB()

	// Bootstrap the admin account on first start
	config.EnsureAdmin(config.DB)

	// Load (or train and persist) the scoring model. Starting without a
	// model would make every prediction fail closed, so bail out early.
	modelPath := config.ModelPath()
	if err := ml.Setup(modelPath); err != nil {
		log.Fatalf("could not initialize scoring model: %v", err)
	}

	// Setup Gin router
	r := routes.SetupRouter()

	addr := config.ListenAddr()
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(r.Run(addr))
}
