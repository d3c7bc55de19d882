package repo

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"dealership/internal/domain"
)

// MarketingSourceRepositoryPG implements domain.MarketingSourceRepository using PostgreSQL.
type MarketingSourceRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewMarketingSourceRepository(pool *pgxpool.Pool) *MarketingSourceRepositoryPG {
	return &MarketingSourceRepositoryPG{pool: pool}
}

func (r *MarketingSourceRepositoryPG) ListAll(ctx context.Context) ([]domain.MarketingSource, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, source, ip_address, user_agent, country, created_at
FROM marketing_sources
ORDER BY created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []domain.MarketingSource
	for rows.Next() {
		var s domain.MarketingSource
		if err := rows.Scan(&s.ID, &s.Source, &s.IPAddress, &s.UserAgent, &s.Country, &s.CreatedAt); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *MarketingSourceRepositoryPG) Create(ctx context.Context, src *domain.MarketingSource) (*domain.MarketingSource, error) {
	out := *src
	err := r.pool.QueryRow(ctx, `
INSERT INTO marketing_sources (source, ip_address, user_agent, country)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`, src.Source, src.IPAddress, src.UserAgent, src.Country).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats aggregates attribution events per source, most frequent first.
// Percentages are of the total event count, rounded to whole percent.
func (r *MarketingSourceRepositoryPG) Stats(ctx context.Context) ([]domain.SourceStat, error) {
	rows, err := r.pool.Query(ctx, `
SELECT source, COUNT(*)::int AS cnt
FROM marketing_sources
GROUP BY source
ORDER BY cnt DESC, source ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.SourceStat
	total := 0
	for rows.Next() {
		var s domain.SourceStat
		if err := rows.Scan(&s.Source, &s.Count); err != nil {
			return nil, err
		}
		total += s.Count
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stats {
		stats[i].Percentage = int(math.Round(float64(stats[i].Count) / float64(total) * 100))
	}
	return stats, nil
}

var _ domain.MarketingSourceRepository = (*MarketingSourceRepositoryPG)(nil)
