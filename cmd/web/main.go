package main

import (
	"log"

	_ "buildxpert/docs"
	"buildxpert/internal/app"
)

// @title BuildXpert API
// @version 1.0
// @description Job board for painting work with real-time messaging between clients and the back office.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
