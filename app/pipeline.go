package app

import (
	"context"
	"fmt"
	"sync"
)

// StartPipeline connects the inbound broker and launches the delivery
// workers, recovery workers, and subscription reaper. One delivery worker and
// one recovery worker per bucket; the bucket count equals the worker count,
// so every bucket has exactly one owner.
//
// The first sweep of each worker doubles as crash recovery: anything left in
// the notification or recovery stores by a previous run is picked up from
// persistent state before new events arrive.
func StartPipeline(ctx context.Context, app *Application) error {
	broker, err := NewBroker(ctx, &app.Config)
	if err != nil {
		return fmt.Errorf("starting pipeline: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	for i := 0; i < app.Config.DeliveryWorkers; i++ {
		bucket := int32(i)

		wg.Add(2)
		go func() {
			defer wg.Done()
			NewDeliveryWorker(app, bucket).Run(runCtx)
		}()
		go func() {
			defer wg.Done()
			NewRecoveryWorker(app, bucket).Run(runCtx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		NewReaper(app).Run(runCtx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := broker.Consume(runCtx, app); err != nil {
			log(runCtx).Error("Event consumer exited", "error", err)
		}
	}()

	app.SetStopPipeline(func() {
		cancel()
		broker.Close()
		wg.Wait()
	})

	return nil
}
