package main

import (
	"flag"
	"log"

	"github.com/example/ordem-servico/internal/config"
	"github.com/example/ordem-servico/internal/store"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run schema migrations and exit")
	purgeFlag       = flag.Bool("purge", false, "Permanently remove records past the retention window and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	if *purgeFlag {
		n, msg, err := st.PurgeExpired()
		if err != nil {
			log.Fatalf("Purge failed: %v", err)
		}
		log.Printf("Purge completed: %s (%d removidos)", msg, n)
		return
	}

	ordens, err := st.Orders.List()
	if err != nil {
		log.Fatalf("Failed to list orders: %v", err)
	}
	clientes, err := st.Clients.List()
	if err != nil {
		log.Fatalf("Failed to list clients: %v", err)
	}
	log.Printf("Banco pronto: %d ordem(ns) de serviço, %d cliente(s), retenção de %d dias",
		len(ordens), len(clientes), st.RetentionDays())
}
