package broker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uploadgate/internal/domain/dto"
)

func publishRecords(t *testing.T, client *Client, records []dto.UploadRecord) {
	t.Helper()

	publisher := NewPublisher(client, PublisherConfig{Timeout: 1000})
	for _, record := range records {
		require.NoError(t, publisher.PublishUpload(context.Background(), record))
	}
}

func TestReceiveUploadEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []dto.UploadRecord
	}{
		{"single upload", []dto.UploadRecord{uploadRecord(1)}},
		{"several uploads", []dto.UploadRecord{
			uploadRecord(1), uploadRecord(2), uploadRecord(3), uploadRecord(4), uploadRecord(5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t)
			publishRecords(t, client, tt.records)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			ch, err := NewReceiver(client).Messages(ctx, Consumer)
			require.NoError(t, err)

			received := make([]dto.UploadRecord, 0, len(tt.records))
			for range tt.records {
				msg := <-ch
				require.NotNil(t, msg)

				record, err := msg.Record()
				require.NoError(t, err)
				received = append(received, record)
				assert.NoError(t, msg.Ack())
			}

			assert.ElementsMatch(t, tt.records, received)

			pending, err := client.redis.XPending(context.Background(), StreamName, GroupName).Result()
			require.NoError(t, err)
			assert.Zero(t, pending.Count)
		})
	}
}

func TestReceiveUndecodableEvent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	require.NoError(t, client.redis.XAdd(context.Background(), &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{"other": "no body"},
	}).Err())
	require.NoError(t, client.redis.XAdd(context.Background(), &redis.XAddArgs{
		Stream: StreamName,
		Values: eventValues("not json"),
	}).Err())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := NewReceiver(client).Messages(ctx, Consumer)
	require.NoError(t, err)

	msg := <-ch
	require.NotNil(t, msg)
	assert.Equal(t, "not json", msg.Body())

	_, err = msg.Record()
	assert.Error(t, err)
	assert.NoError(t, msg.Ack())
}

func TestNackRedeliversUpload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	want := uploadRecord(9)
	publishRecords(t, client, []dto.UploadRecord{want})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := NewReceiver(client).Messages(ctx, Consumer)
	require.NoError(t, err)

	first := <-ch
	require.NotNil(t, first)
	require.NoError(t, first.Nack())

	second := <-ch
	require.NotNil(t, second)
	got, err := second.Record()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, second.Ack())

	pending, err := client.redis.XPending(context.Background(), StreamName, GroupName).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestReceiveConcurrentConsumers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	totalUploads := 100
	workers := 5
	records := make([]dto.UploadRecord, totalUploads)
	for i := range totalUploads {
		records[i] = uploadRecord(i)
	}
	publishRecords(t, client, records)

	received := make(chan string, totalUploads)
	var wg sync.WaitGroup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receiver := NewReceiver(client)

	for i := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ch, err := receiver.Messages(ctx, fmt.Sprintf("reader-%d", id))
			if err != nil {
				return
			}
			for msg := range ch {
				record, err := msg.Record()
				if err == nil {
					received <- record.ID
				}
				_ = msg.Ack()
			}
		}(i)
	}

	wg.Wait()
	close(received)

	seen := make(map[string]bool)
	for id := range received {
		assert.False(t, seen[id], "upload %s delivered twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, totalUploads)
}

func TestReceiveContextCancel(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	ch, err := NewReceiver(client).Messages(ctx, "reader-cancel")
	require.NoError(t, err)

	_, ok := <-ch
	assert.False(t, ok, "channel must close once the context is done")
}

func TestReceiveUninitialized(t *testing.T) {
	t.Parallel()

	ch, err := (&Receiver{}).Messages(context.Background(), "reader")
	assert.Nil(t, ch)
	assert.Error(t, err)
}
