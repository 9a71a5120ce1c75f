// Bootstraps the entitlements table. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"buildcost-premium/internal/config"
	pg "buildcost-premium/internal/infra/db/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS entitlements (
    id         TEXT PRIMARY KEY,
    has_paid   BOOLEAN     NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("entitlements table ready")
}
