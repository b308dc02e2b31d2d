package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/inkwell/pkg/app"
	"github.com/ghuser/inkwell/pkg/cache"
	"github.com/ghuser/inkwell/pkg/config"
	"github.com/ghuser/inkwell/pkg/database"
	"github.com/ghuser/inkwell/pkg/events"
	"github.com/ghuser/inkwell/pkg/logger"
	"github.com/ghuser/inkwell/pkg/telemetry"
	appsvcs "github.com/ghuser/inkwell/services/worldbuilding/application/services"
	wbevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	svcs := appsvcs.New(a)

	handlers := map[string]func(context.Context, *message.Message) error{
		wbevents.TopicUniverseCreated: warmUniverseCache(a, svcs),
		wbevents.TopicUniverseUpdated: warmUniverseCache(a, svcs),
		wbevents.TopicUniverseDeleted: dropUniverseCache(a, svcs),
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		topics = append(topics, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// universeIDFromPayload extracts the universe identifier every universe
// lifecycle payload carries, regardless of which event type produced it.
func universeIDFromPayload(payload []byte) (int64, error) {
	var evt struct {
		UniverseID int64 `json:"universe_id"`
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return 0, err
	}
	return evt.UniverseID, nil
}

// warmUniverseCache returns a handler that refreshes the universe read model
// in Redis. Handlers must be idempotent — EventBus retries up to 3× on failure.
func warmUniverseCache(a *app.Application, svcs *appsvcs.Services) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		universeID, err := universeIDFromPayload(msg.Payload)
		if err != nil {
			return err
		}

		if err := svcs.Universes.WarmCache(ctx, universeID); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed",
				"universe_id", universeID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "universe_id", universeID)
		}

		return nil
	}
}

// dropUniverseCache returns a handler that evicts a deleted universe from Redis.
func dropUniverseCache(a *app.Application, svcs *appsvcs.Services) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		universeID, err := universeIDFromPayload(msg.Payload)
		if err != nil {
			return err
		}

		if err := svcs.Universes.DropCache(ctx, universeID); err != nil {
			a.Logger.WarnContext(ctx, "cache evict failed",
				"universe_id", universeID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache evicted", "universe_id", universeID)
		}

		return nil
	}
}
