package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"uploadgate/internal/infrastructure/broker"
	"uploadgate/pkg/logger"
)

// HandleEvents prints one tab separated line per upload event until
// interrupted. An optional fourth argument names the consumer.
func HandleEvents(args []string) {
	cfg := loadConfig(args)

	if !cfg.BrokerConfig.Enabled {
		ExitOnError(errors.New("redis_broker_config.enabled must be true to read events"))
	}

	consumer := "uploadgate-events"
	if len(args) > 3 {
		consumer = args[3]
	}

	client, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	messages, err := broker.NewReceiver(client).Messages(ctx, consumer)
	if err != nil {
		ExitOnError(err)
	}

	logger.Info("reading upload events", "stream", cfg.BrokerConfig.StreamName, "consumer", consumer)

	for msg := range messages {
		record, err := msg.Record()
		if err != nil {
			logger.Error("dropping undecodable upload event", "err", err)

			if err := msg.Ack(); err != nil {
				logger.Error("failed to ack upload event", "err", err)
			}

			continue
		}

		_, err = fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n", //nolint
			time.Unix(record.Uploaded, 0).UTC().Format(time.RFC3339), record.ID, record.Name,
			humanize.Bytes(uint64(record.Size)), record.FileType, record.Sha256)
		if err != nil {
			if err := msg.Nack(); err != nil {
				logger.Error("failed to nack upload event", "id", record.ID, "err", err)
			}

			return
		}

		if err := msg.Ack(); err != nil {
			logger.Error("failed to ack upload event", "id", record.ID, "err", err)
		}
	}
}
