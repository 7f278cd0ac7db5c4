// Package dispatch hands committed distribution requests to downstream consumers.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	commonredis "relief-dispatch/common/redis"
	"relief-dispatch/internal/domain"

	"go.uber.org/zap"
)

// EventBulkRequestSubmitted stream entry type for bulk distribution requests.
const EventBulkRequestSubmitted = "distribution_request.bulk_submitted"

// StreamSubmitter publishes each submitted request to a Redis stream where the
// approval pipeline picks it up.
type StreamSubmitter struct {
	client *commonredis.Client
	stream string
	maxLen int64
	logger *zap.Logger
}

func NewStreamSubmitter(client *commonredis.Client, stream string, maxLen int64, logger *zap.Logger) *StreamSubmitter {
	return &StreamSubmitter{client: client, stream: stream, maxLen: maxLen, logger: logger}
}

func (s *StreamSubmitter) Submit(ctx context.Context, req *domain.DistributionRequest) error {
	id, err := commonredis.PublishJSON(ctx, s.client, s.stream, EventBulkRequestSubmitted, req, s.maxLen)
	if err != nil {
		return err
	}
	s.logger.Debug("Published distribution request",
		zap.String("stream", s.stream),
		zap.String("entry_id", id),
		zap.String("request_id", req.ID),
	)
	return nil
}

// Published decodes the requests currently held in the stream, oldest first.
func (s *StreamSubmitter) Published(ctx context.Context) ([]*domain.DistributionRequest, error) {
	entries, err := commonredis.ReadRange(ctx, s.client, s.stream, "-", "+")
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DistributionRequest, 0, len(entries))
	for _, e := range entries {
		if e.Type != EventBulkRequestSubmitted {
			continue
		}
		var req domain.DistributionRequest
		if err := json.Unmarshal(e.Payload, &req); err != nil {
			return nil, fmt.Errorf("failed to decode stream entry %s: %w", e.ID, err)
		}
		out = append(out, &req)
	}
	return out, nil
}
