package e2e

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sweater-ventures/notifier/app"
	"github.com/sweater-ventures/notifier/config"
	"github.com/sweater-ventures/notifier/db"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Println("skipping e2e tests (-short flag)")
		os.Exit(0)
	}

	postgres := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(15433).
			Database("notifier_test"),
	)

	if err := postgres.Start(); err != nil {
		log.Fatalf("failed to start embedded postgres: %v", err)
	}

	pool, err := pgxpool.New(context.Background(),
		"host=localhost port=15433 user=postgres password=postgres dbname=notifier_test sslmode=disable",
	)
	if err != nil {
		postgres.Stop()
		log.Fatalf("failed to connect to embedded postgres: %v", err)
	}

	if err := runMigrations(pool); err != nil {
		pool.Close()
		postgres.Stop()
		log.Fatalf("failed to run migrations: %v", err)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	if err := postgres.Stop(); err != nil {
		log.Printf("warning: failed to stop embedded postgres: %v", err)
	}
	os.Exit(code)
}

// runMigrations executes the up migrations directly. Exec without arguments
// uses the simple query protocol, so multi-statement files are fine.
func runMigrations(pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "db", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".sql" {
			continue
		}
		if len(e.Name()) < 7 || e.Name()[len(e.Name())-7:] != ".up.sql" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(migrationsDir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if _, err := pool.Exec(context.Background(), string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

// resetTables truncates all pipeline tables between tests.
func resetTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"TRUNCATE subscriptions, notifications, notifications_last_event, notifications_recovery, test_sequences",
	)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// newE2EApp builds an Application backed by the shared embedded database.
// Intervals are irrelevant: tests drive workers with explicit sweeps.
func newE2EApp() *app.Application {
	queries := db.New(testPool)
	cfg := config.AppConfig{
		DeliveryWorkers:        2,
		DeliveryMaxAttempts:    3,
		DeliveryRetrySeconds:   60,
		DeliveryTimeoutSeconds: 5,
		RecoveryMaxAttempts:    5,
		RecoveryRetryMinutes:   60,
		ReaperIntervalMinutes:  60,
		SMTPHost:               "localhost",
		SMTPPort:               2525,
		SMTPFrom:               "no-reply@notifier.local",
	}
	a := &app.Application{
		Config:        cfg,
		DB:            queries,
		Store:         app.NewPgxStore(testPool),
		Transport:     app.NewDeliveryTransport(&cfg),
		EventBus:      app.NewEventBus(),
		Subscriptions: app.NewSubscriptionCache(queries),
		TestSeqCache:  app.NewCache[string, bool](),
	}
	return a
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := testPool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	if err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return n
}
