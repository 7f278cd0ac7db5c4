package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"relief-dispatch/internal/domain"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresRequestsRepo pending requests stored in distribution_requests.
// Newest-first order comes from created_at.
type PostgresRequestsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresRequestsRepo(db *sql.DB, logger *zap.Logger) *PostgresRequestsRepo {
	return &PostgresRequestsRepo{db: db, logger: logger}
}

func (r *PostgresRequestsRepo) Prepend(ctx context.Context, req *domain.DistributionRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	query := `
		INSERT INTO distribution_requests (
			request_id, requester_id, requester_type, requester_name, created_at,
			status, kind, template_id, quantity,
			target_governorate, target_city, target_district,
			notes, priority, estimated_cost, estimated_delivery_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.RequesterID, req.RequesterType, req.RequesterName, req.CreatedAt,
		string(req.Status), string(req.Kind), req.TemplateID, req.Quantity,
		req.TargetGovernorate, req.TargetCity, req.TargetDistrict,
		req.Notes, string(req.Priority), req.EstimatedCost, req.EstimatedDeliveryTime,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ID)
		}
		return fmt.Errorf("failed to insert distribution request: %w", err)
	}
	r.logger.Debug("Distribution request stored", zap.String("request_id", req.ID))
	return nil
}

func (r *PostgresRequestsRepo) ListPending(ctx context.Context) ([]*domain.DistributionRequest, error) {
	query := `
		SELECT
			request_id, requester_id, requester_type, requester_name, created_at,
			status, kind, template_id, quantity,
			target_governorate, target_city, target_district,
			COALESCE(notes, ''), priority, estimated_cost, estimated_delivery_time
		FROM distribution_requests
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, string(domain.RequestStatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution requests: %w", err)
	}
	defer rows.Close()

	out := []*domain.DistributionRequest{}
	for rows.Next() {
		var req domain.DistributionRequest
		var status, kind, priority string
		if err := rows.Scan(
			&req.ID, &req.RequesterID, &req.RequesterType, &req.RequesterName, &req.CreatedAt,
			&status, &kind, &req.TemplateID, &req.Quantity,
			&req.TargetGovernorate, &req.TargetCity, &req.TargetDistrict,
			&req.Notes, &priority, &req.EstimatedCost, &req.EstimatedDeliveryTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan distribution request: %w", err)
		}
		req.Status = domain.RequestStatus(status)
		req.Kind = domain.RequestKind(kind)
		req.Priority = domain.Priority(priority)
		out = append(out, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate distribution requests: %w", err)
	}
	return out, nil
}
