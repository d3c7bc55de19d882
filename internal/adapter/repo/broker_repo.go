package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dealership/internal/domain"
)

// BrokerRequestRepositoryPG implements domain.BrokerRequestRepository using PostgreSQL.
type BrokerRequestRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewBrokerRequestRepository(pool *pgxpool.Pool) *BrokerRequestRepositoryPG {
	return &BrokerRequestRepositoryPG{pool: pool}
}

// ListAll returns all broker requests, newest first.
func (r *BrokerRequestRepositoryPG) ListAll(ctx context.Context) ([]domain.BrokerRequest, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, first_name, last_name, email, phone, vehicle_selections, max_budget, mileage_range, additional_requirements, deposit_agreed, status, created_at
FROM broker_requests
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.BrokerRequest
	for rows.Next() {
		var b domain.BrokerRequest
		var selections []byte
		if err := rows.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone, &selections, &b.MaxBudget, &b.MileageRange, &b.AdditionalRequirements, &b.DepositAgreed, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(selections, &b.VehicleSelections); err != nil {
			return nil, fmt.Errorf("decode vehicle selections: %w", err)
		}
		requests = append(requests, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Create inserts a broker request. Input is expected to be normalized.
func (r *BrokerRequestRepositoryPG) Create(ctx context.Context, in *domain.BrokerRequestInput) (*domain.BrokerRequest, error) {
	selectionsJSON, err := json.Marshal(in.VehicleSelections)
	if err != nil {
		return nil, fmt.Errorf("encode vehicle selections: %w", err)
	}

	b := domain.BrokerRequest{
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		Email:                  in.Email,
		Phone:                  in.Phone,
		VehicleSelections:      in.VehicleSelections,
		MaxBudget:              in.MaxBudget,
		MileageRange:           in.MileageRange,
		AdditionalRequirements: in.AdditionalRequirements,
		DepositAgreed:          in.DepositAgreed,
		Status:                 domain.BrokerStatusPending,
	}
	err = r.pool.QueryRow(ctx, `
INSERT INTO broker_requests (first_name, last_name, email, phone, vehicle_selections, max_budget, mileage_range, additional_requirements, deposit_agreed, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at;
`, b.FirstName, b.LastName, b.Email, b.Phone, selectionsJSON, b.MaxBudget, b.MileageRange, b.AdditionalRequirements, b.DepositAgreed, b.Status).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

var _ domain.BrokerRequestRepository = (*BrokerRequestRepositoryPG)(nil)
