package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealership/internal/domain"
)

// VehicleRepositoryPG implements domain.VehicleRepository using PostgreSQL.
type VehicleRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository constructs a new vehicle repository instance.
func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepositoryPG {
	return &VehicleRepositoryPG{pool: pool}
}

const vehicleColumns = `id, make, model, year, price::text, mileage, transmission, drivetrain, features, description, images, status, created_at, updated_at`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var images []byte
	if err := row.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &v.Mileage, &v.Transmission, &v.Drivetrain, &v.Features, &v.Description, &images, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &v.Images); err != nil {
		return nil, fmt.Errorf("decode vehicle images: %w", err)
	}
	return &v, nil
}

// ListAll returns all vehicles, newest first.
func (r *VehicleRepositoryPG) ListAll(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+vehicleColumns+`
FROM vehicles
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetByID returns a single vehicle or domain.ErrNotFound.
func (r *VehicleRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.pool.QueryRow(ctx, `
SELECT `+vehicleColumns+`
FROM vehicles
WHERE id = $1;
`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return v, err
}

// Create inserts a new vehicle.
func (r *VehicleRepositoryPG) Create(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode vehicle images: %w", err)
	}

	status := string(domain.VehicleStatusAvailable)
	if in.Status != nil {
		status = *in.Status
	}

	return scanVehicle(r.pool.QueryRow(ctx, `
INSERT INTO vehicles (make, model, year, price, mileage, transmission, drivetrain, features, description, images, status)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+vehicleColumns+`;
`,
		strVal(in.Make), strVal(in.Model), intVal(in.Year), strVal(in.Price), intVal(in.Mileage),
		strVal(in.Transmission), strVal(in.Drivetrain), strVal(in.Features), strVal(in.Description),
		imagesJSON, status,
	))
}

// Update applies a partial update and returns the stored row, or
// domain.ErrNotFound. Absent fields are left untouched.
func (r *VehicleRepositoryPG) Update(ctx context.Context, id string, in *domain.VehicleInput) (*domain.Vehicle, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(expr string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if in.Make != nil {
		add("make = $%d", *in.Make)
	}
	if in.Model != nil {
		add("model = $%d", *in.Model)
	}
	if in.Year != nil {
		add("year = $%d", *in.Year)
	}
	if in.Price != nil {
		add("price = $%d::numeric", *in.Price)
	}
	if in.Mileage != nil {
		add("mileage = $%d", *in.Mileage)
	}
	if in.Transmission != nil {
		add("transmission = $%d", *in.Transmission)
	}
	if in.Drivetrain != nil {
		add("drivetrain = $%d", *in.Drivetrain)
	}
	if in.Features != nil {
		add("features = $%d", *in.Features)
	}
	if in.Description != nil {
		add("description = $%d", *in.Description)
	}
	if in.Images != nil {
		imagesJSON, err := json.Marshal(in.Images)
		if err != nil {
			return nil, fmt.Errorf("encode vehicle images: %w", err)
		}
		add("images = $%d", imagesJSON)
	}
	if in.Status != nil {
		add("status = $%d", *in.Status)
	}

	query := fmt.Sprintf(`
UPDATE vehicles
SET %s
WHERE id = $1
RETURNING %s;
`, strings.Join(sets, ", "), vehicleColumns)

	v, err := scanVehicle(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return v, err
}

// Delete removes a vehicle, or returns domain.ErrNotFound.
func (r *VehicleRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendImage appends a normalized image path in a single statement, so
// concurrent uploads for the same vehicle cannot lose entries.
func (r *VehicleRepositoryPG) AppendImage(ctx context.Context, id string, path string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE vehicles
SET images = images || to_jsonb($2::text), updated_at = now()
WHERE id = $1;
`, id, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

var _ domain.VehicleRepository = (*VehicleRepositoryPG)(nil)
