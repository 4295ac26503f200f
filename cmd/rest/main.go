package main

import (
	"context"
	"log"

	"swift-assist-be/internal/bootstrap"
	"swift-assist-be/internal/config"
	"swift-assist-be/internal/server"
	"swift-assist-be/internal/tracer"
	"swift-assist-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (full DSN wins over the structured form)
	var gormDB *gorm.DB
	var err error
	if cfg.Database.Connection != "" {
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
	} else {
		gormDB, err = database.NewGormDB(database.GormConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
	}
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
