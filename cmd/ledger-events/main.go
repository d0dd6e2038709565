// Command ledger-events consumes ledger events from RabbitMQ and writes one
// audit log line per event.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cli"
	"expensetracker/internal/events"
	"expensetracker/internal/log"
)

func main() {
	bootstrap := cli.SetupLogger(nil, nil)
	cfg := cli.LoadAndValidateConfig(bootstrap)
	logger := cli.SetupLogger(cfg, nil).WithComponent(log.ComponentEvents)

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the events consumer")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := events.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Consume(gctx, auditHandler(logger))
	})

	logger.Info("Started ledger events consumer", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Ledger events consumer stopped")
}

func auditHandler(logger *log.Logger) events.Handler {
	return func(ctx context.Context, msg *events.Message) error {
		logger.InfoContext(ctx, "Ledger event",
			log.FieldOperation, log.OpConsume,
			log.FieldEventType, msg.Type,
			log.FieldExpenseID, msg.ExpenseID,
			log.FieldExpenseDesc, msg.Description,
			log.FieldAmount, msg.Amount,
			log.FieldCategory, msg.Category,
			"event_time", msg.Timestamp)
		return nil
	}
}
