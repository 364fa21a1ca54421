package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sweater-ventures/notifier/config"
	"github.com/sweater-ventures/notifier/db"
)

type Application struct {
	Config        config.AppConfig
	DB            db.Querier
	Store         TxStore
	Transport     Transport
	EventBus      *EventBus
	Subscriptions *SubscriptionCache
	// TestSeqCache remembers which subscriptions have a test sequence
	// attached, including negative lookups, so the ingestor does one query
	// per subscription instead of one per notification.
	TestSeqCache *Cache[string, bool]
	pool         *pgxpool.Pool
	stopPipeline func()
}

func NewApp(config *config.AppConfig) (*Application, error) {
	conn, err := connectToDB(config)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return nil, err
	}
	queries := db.New(conn)

	return &Application{
		Config:        *config,
		DB:            queries,
		Store:         NewPgxStore(conn),
		Transport:     NewDeliveryTransport(config),
		EventBus:      NewEventBus(),
		Subscriptions: NewSubscriptionCache(queries),
		TestSeqCache:  NewCache[string, bool](),
		pool:          conn,
		stopPipeline:  func() {},
	}, nil
}

func (a *Application) SetStopPipeline(fn func()) {
	a.stopPipeline = fn
}

// StopPipeline shuts down the consumer, workers, and reaper, blocking until
// in-flight poll cycles finish.
func (a *Application) StopPipeline() {
	a.stopPipeline()
}
