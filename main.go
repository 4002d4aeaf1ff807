// file: main.go
package main

import (
	"log"

	"CFOCup/config"
	"CFOCup/database"
	"CFOCup/routes"
	"CFOCup/utils"
)

func main() {
	cfg := config.Load()

	utils.InitJWT(cfg.JWTSecret)

	database.Connect(cfg.MySQLDSN)
	database.MigrateTables()
	database.InitRedis(cfg.RedisAddr, cfg.RedisPassword)

	r := routes.SetupRouter()

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
