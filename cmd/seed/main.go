package main

import (
	"context"
	"log"

	"tombola/internal/config"
	"tombola/internal/repository"
	"tombola/internal/store"
)

// Writes the default prize catalog to the blob store, replacing whatever is
// there. Useful for resetting a demo environment.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := store.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	gateway, err := store.NewGorm(gormDB)
	if err != nil {
		log.Fatalf("Failed to init blob store: %v", err)
	}
	log.Println("Connected to database")

	prizeRepo := repository.NewPrizeRepository(gateway)
	prizes, err := prizeRepo.Reset(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed prize catalog: %v", err)
	}

	for _, p := range prizes {
		log.Printf("seeded prize %s: %s (%s per ticket, %d tickets)", p.ID, p.Name, p.TicketPrice, p.MaxTickets)
	}
	log.Printf("Seed complete: %d prizes", len(prizes))
}
