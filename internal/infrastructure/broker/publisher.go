package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uploadgate/internal/domain/dto"
)

const bodyField = "body"

type Publisher struct {
	client  *Client
	timeout time.Duration
	maxLen  int64
}

func NewPublisher(client *Client, cfg PublisherConfig) *Publisher {
	return &Publisher{
		client:  client,
		timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		maxLen:  cfg.MaxLen,
	}
}

// PublishUpload appends record as JSON to the upload event stream.
func (p *Publisher) PublishUpload(ctx context.Context, record dto.UploadRecord) error {
	if p.client == nil || p.client.redis == nil {
		return errors.New("redis not initialized")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode upload event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: p.client.stream,
		Values: eventValues(string(body)),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	return p.client.redis.XAdd(ctx, args).Err()
}
