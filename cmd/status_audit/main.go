package main

import (
	"context"
	"flag"
	"log"

	"equiplend/internal/config"
	"equiplend/internal/database"
	"equiplend/internal/modules/audit"
	"equiplend/internal/repository"
)

func main() {
	fix := flag.Bool("fix", false, "rewrite drifting equipment to its derived status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := audit.NewService(
		repository.NewEquipmentRepository(db),
		repository.NewCheckoutRepository(db),
	)

	drifts, err := svc.Run(context.Background(), *fix)
	if err != nil {
		log.Fatalf("status audit failed: %v", err)
	}

	log.Printf("status audit completed: drifting=%d fix=%t", len(drifts), *fix)
}
