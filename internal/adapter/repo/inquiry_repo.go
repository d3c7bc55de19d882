package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dealership/internal/domain"
)

// ContactInquiryRepositoryPG implements domain.ContactInquiryRepository using PostgreSQL.
type ContactInquiryRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewContactInquiryRepository(pool *pgxpool.Pool) *ContactInquiryRepositoryPG {
	return &ContactInquiryRepositoryPG{pool: pool}
}

func (r *ContactInquiryRepositoryPG) ListAll(ctx context.Context) ([]domain.ContactInquiry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, email, subject, message, status, created_at
FROM contact_inquiries
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []domain.ContactInquiry
	for rows.Next() {
		var q domain.ContactInquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Subject, &q.Message, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *ContactInquiryRepositoryPG) Create(ctx context.Context, in *domain.ContactInquiryInput) (*domain.ContactInquiry, error) {
	q := domain.ContactInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Status:  domain.InquiryStatusNew,
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO contact_inquiries (name, email, subject, message, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at;
`, q.Name, q.Email, q.Subject, q.Message, q.Status).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ContactInquiryRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_inquiries WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// VehicleInquiryRepositoryPG implements domain.VehicleInquiryRepository using PostgreSQL.
type VehicleInquiryRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewVehicleInquiryRepository(pool *pgxpool.Pool) *VehicleInquiryRepositoryPG {
	return &VehicleInquiryRepositoryPG{pool: pool}
}

func (r *VehicleInquiryRepositoryPG) ListAll(ctx context.Context) ([]domain.VehicleInquiry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, vehicle_id, first_name, last_name, email, phone, message, status, created_at
FROM vehicle_inquiries
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []domain.VehicleInquiry
	for rows.Next() {
		var q domain.VehicleInquiry
		if err := rows.Scan(&q.ID, &q.VehicleID, &q.FirstName, &q.LastName, &q.Email, &q.Phone, &q.Message, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *VehicleInquiryRepositoryPG) Create(ctx context.Context, in *domain.VehicleInquiryInput) (*domain.VehicleInquiry, error) {
	q := domain.VehicleInquiry{
		VehicleID: in.VehicleID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		Status:    domain.InquiryStatusNew,
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO vehicle_inquiries (vehicle_id, first_name, last_name, email, phone, message, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at;
`, q.VehicleID, q.FirstName, q.LastName, q.Email, q.Phone, q.Message, q.Status).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *VehicleInquiryRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicle_inquiries WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var (
	_ domain.ContactInquiryRepository = (*ContactInquiryRepositoryPG)(nil)
	_ domain.VehicleInquiryRepository = (*VehicleInquiryRepositoryPG)(nil)
)
