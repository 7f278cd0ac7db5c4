package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Stream entry fields written by PublishJSON.
const (
	FieldType      = "type"
	FieldPayload   = "payload"
	FieldTimestamp = "timestamp"
)

// StreamEntry one entry written by PublishJSON.
type StreamEntry struct {
	ID        string
	Type      string
	Payload   []byte
	Timestamp time.Time
}

// PublishJSON appends data as a JSON payload to stream and returns the entry id.
// When maxLen is positive the stream is trimmed to roughly that many entries.
func PublishJSON(ctx context.Context, client *Client, stream, eventType string, data any, maxLen int64) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode stream payload: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			FieldType:      eventType,
			FieldPayload:   string(payload),
			FieldTimestamp: strconv.FormatInt(time.Now().UnixMilli(), 10),
		},
	}
	if maxLen > 0 {
		args.MaxLen = maxLen
		args.Approx = true
	}

	id, err := client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}
	return id, nil
}

// ReadRange returns entries of stream between ids start and end inclusive ("-" and "+" for the ends).
func ReadRange(ctx context.Context, client *Client, stream, start, end string) ([]StreamEntry, error) {
	msgs, err := client.XRange(ctx, stream, start, end).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stream %s: %w", stream, err)
	}

	out := make([]StreamEntry, 0, len(msgs))
	for _, msg := range msgs {
		entry := StreamEntry{ID: msg.ID}
		if v, ok := msg.Values[FieldType].(string); ok {
			entry.Type = v
		}
		if v, ok := msg.Values[FieldPayload].(string); ok {
			entry.Payload = []byte(v)
		}
		if v, ok := msg.Values[FieldTimestamp].(string); ok {
			if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
				entry.Timestamp = time.UnixMilli(ms)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
