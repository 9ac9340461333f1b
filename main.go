package main

import (
	"log"

	"TintTrack/Config"
	"TintTrack/Controllers"
	"TintTrack/FiberConfig"
	"TintTrack/Models"
	"TintTrack/middleware"
)

func main() {
	cfg := Config.MustConfig()

	middleware.SecretKey = cfg.JWTSecret
	Controllers.PhotoDir = cfg.PhotoDir

	Models.Connect(cfg.StoragePath)
	if err := Models.SeedAdmin(Models.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Error seeding admin account: %v", err)
	}

	FiberConfig.FiberConfig(cfg)
}
