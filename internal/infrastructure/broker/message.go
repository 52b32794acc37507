package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"uploadgate/internal/domain/dto"
)

// UploadEvent is an upload record read from the stream by one consumer of
// the group.
type UploadEvent struct {
	stream      string
	group       string
	consumer    string
	id          string
	body        string
	redisClient *redis.Client
}

func (m *UploadEvent) Body() string {
	return m.body
}

// Record decodes the event body.
func (m *UploadEvent) Record() (dto.UploadRecord, error) {
	var record dto.UploadRecord
	if err := json.Unmarshal([]byte(m.body), &record); err != nil {
		return dto.UploadRecord{}, fmt.Errorf("decode upload event %s: %w", m.id, err)
	}

	return record, nil
}

func (m *UploadEvent) Ack() error {
	return m.redisClient.XAck(context.Background(), m.stream, m.group, m.id).Err()
}

// Nack hands the event back to the group: it is appended again to the
// stream and the delivered entry is acknowledged, in one transaction.
func (m *UploadEvent) Nack() error {
	ctx := context.Background()

	_, err := m.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: m.stream,
			Values: eventValues(m.body),
		})
		pipe.XAck(ctx, m.stream, m.group, m.id)

		return nil
	})

	return err
}

func eventValues(body string) map[string]any {
	return map[string]any{bodyField: body}
}
