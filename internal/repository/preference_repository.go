package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/personal-site/internal/domain"
)

// PreferenceRepository defines persistence access for visitor preferences.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (*domain.Preference, error)
	Upsert(ctx context.Context, key string, theme domain.Theme) error
}

type preferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository returns a Postgres-backed implementation.
func NewPreferenceRepository(pool *pgxpool.Pool) PreferenceRepository {
	return &preferenceRepository{pool: pool}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (*domain.Preference, error) {
	const query = `
        SELECT preference_key, theme, updated_at
        FROM user_preferences WHERE preference_key=$1`

	var pref domain.Preference
	if err := r.pool.QueryRow(ctx, query, key).Scan(
		&pref.Key,
		&pref.Theme,
		&pref.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, key string, theme domain.Theme) error {
	// Single-statement upsert: concurrent writers to the same key resolve
	// last-write-wins at the row level, no read-modify-write cycle.
	const query = `
        INSERT INTO user_preferences (preference_key, theme)
        VALUES ($1, $2)
        ON CONFLICT (preference_key)
        DO UPDATE SET theme=$2, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, key, theme)
	return err
}
