package postgres

import (
	"context"
	"errors"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgPreferenceRepository implements repository.PreferenceRepository.
type pgPreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository creates a preference repository backed by
// Postgres.
func NewPreferenceRepository(pool *pgxpool.Pool) repository.PreferenceRepository {
	return &pgPreferenceRepository{pool: pool}
}

// identityClause returns the WHERE fragment and argument selecting rows
// owned by the given identity. Session identity wins over user identity
// when the caller filled both.
func identityClause(id domain.PrefIdentity) (string, any) {
	if id.SessionID != "" {
		return "session_id = $1 AND user_id IS NULL", id.SessionID
	}
	return "user_id = $1 AND session_id IS NULL", id.UserID
}

func (r *pgPreferenceRepository) Get(ctx context.Context, id domain.PrefIdentity, key string) (*domain.UserPreference, error) {
	clause, owner := identityClause(id)
	q := `SELECT id, user_id, session_id, key, value, updated_at
		FROM user_preferences WHERE ` + clause + ` AND key = $2`
	var p domain.UserPreference
	err := r.pool.QueryRow(ctx, q, owner, key).Scan(
		&p.ID, &p.UserID, &p.SessionID, &p.Key, &p.Value, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Set upserts by fetch-then-update-else-insert. The identity columns
// are nullable, so the partial unique indexes (one per identity kind)
// stand in for a composite constraint; they make the insert race below
// surface as a unique violation instead of a duplicate row.
func (r *pgPreferenceRepository) Set(ctx context.Context, id domain.PrefIdentity, key, value string) (*domain.UserPreference, error) {
	_, err := r.Get(ctx, id, key)
	if err == nil {
		clause, owner := identityClause(id)
		q := `UPDATE user_preferences SET value = $3, updated_at = now()
			WHERE ` + clause + ` AND key = $2
			RETURNING id, user_id, session_id, key, value, updated_at`
		var p domain.UserPreference
		if err := r.pool.QueryRow(ctx, q, owner, key, value).Scan(
			&p.ID, &p.UserID, &p.SessionID, &p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		return &p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	var userID *int64
	var sessionID *string
	if id.SessionID != "" {
		sessionID = &id.SessionID
	} else {
		userID = id.UserID
	}
	const ins = `INSERT INTO user_preferences (user_id, session_id, key, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, session_id, key, value, updated_at`
	var p domain.UserPreference
	if err := r.pool.QueryRow(ctx, ins, userID, sessionID, key, value).Scan(
		&p.ID, &p.UserID, &p.SessionID, &p.Key, &p.Value, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			// Lost the insert race; the row exists now, update it.
			return r.Set(ctx, id, key, value)
		}
		return nil, err
	}
	return &p, nil
}

func (r *pgPreferenceRepository) Remove(ctx context.Context, id domain.PrefIdentity, key string) error {
	clause, owner := identityClause(id)
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_preferences WHERE `+clause+` AND key = $2`, owner, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgPreferenceRepository) List(ctx context.Context, id domain.PrefIdentity) ([]domain.UserPreference, error) {
	clause, owner := identityClause(id)
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, session_id, key, value, updated_at
		 FROM user_preferences WHERE `+clause+` ORDER BY key`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []domain.UserPreference
	for rows.Next() {
		var p domain.UserPreference
		if err := rows.Scan(&p.ID, &p.UserID, &p.SessionID, &p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

func (r *pgPreferenceRepository) RemoveAll(ctx context.Context, id domain.PrefIdentity) error {
	clause, owner := identityClause(id)
	_, err := r.pool.Exec(ctx, `DELETE FROM user_preferences WHERE `+clause, owner)
	return err
}
