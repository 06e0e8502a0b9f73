package main

import (
	"fmt"
	"log"

	"civireport/configs"
	"civireport/middlewares"
	"civireport/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	db, err := configs.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedAdminCodes(db); err != nil {
		log.Fatalf("seed admin codes failed: %v", err)
	}

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// report pictures
	r.Static("/uploads", "./uploads")

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
