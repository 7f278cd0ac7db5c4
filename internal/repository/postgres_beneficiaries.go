package repository

import (
	"context"
	"database/sql"
	"fmt"

	"relief-dispatch/common/database"
	"relief-dispatch/internal/domain"

	"go.uber.org/zap"
)

// PostgresBeneficiariesRepo beneficiary lookup backed by the beneficiaries table.
type PostgresBeneficiariesRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresBeneficiariesRepo(db *sql.DB, logger *zap.Logger) *PostgresBeneficiariesRepo {
	return &PostgresBeneficiariesRepo{db: db, logger: logger}
}

func (r *PostgresBeneficiariesRepo) ListByArea(ctx context.Context, area domain.AreaNames) ([]domain.Beneficiary, error) {
	query := `
		SELECT beneficiary_id, name, governorate, city, district, verification_status
		FROM beneficiaries
		WHERE governorate = $1 AND city = $2 AND district = $3
		ORDER BY beneficiary_id
	`
	rows, err := r.db.QueryContext(ctx, query, area.Governorate, area.City, area.District)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries: %w", err)
	}
	defer rows.Close()

	out := []domain.Beneficiary{}
	for rows.Next() {
		var b domain.Beneficiary
		var status string
		if err := rows.Scan(&b.ID, &b.Name, &b.Location.Governorate, &b.Location.City, &b.Location.District, &status); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		b.VerificationStatus = domain.VerificationStatus(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beneficiaries: %w", err)
	}
	return out, nil
}

func (r *PostgresBeneficiariesRepo) CountByArea(ctx context.Context, area domain.AreaNames) (AreaCount, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verification_status = 'verified')
		FROM beneficiaries
		WHERE governorate = $1 AND city = $2 AND district = $3
	`
	var c AreaCount
	err := r.db.QueryRowContext(ctx, query, area.Governorate, area.City, area.District).Scan(&c.Total, &c.Verified)
	if err != nil {
		return AreaCount{}, fmt.Errorf("failed to count beneficiaries: %w", err)
	}
	r.logger.Debug("Counted beneficiaries",
		zap.String("district", area.District),
		zap.Int("total", c.Total),
		zap.Int("verified", c.Verified),
	)
	return c, nil
}

// Insert upserts beneficiaries in one transaction. Used to seed a fresh database.
func (r *PostgresBeneficiariesRepo) Insert(ctx context.Context, beneficiaries []domain.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (beneficiary_id, name, governorate, city, district, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (beneficiary_id) DO UPDATE SET
			name = EXCLUDED.name,
			governorate = EXCLUDED.governorate,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			verification_status = EXCLUDED.verification_status
	`
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, b := range beneficiaries {
			if _, err := tx.ExecContext(ctx, query,
				b.ID, b.Name, b.Location.Governorate, b.Location.City, b.Location.District, string(b.VerificationStatus),
			); err != nil {
				return fmt.Errorf("failed to insert beneficiary %s: %w", b.ID, err)
			}
		}
		return nil
	})
}
