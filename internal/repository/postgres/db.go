package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDB opens a bounded connection pool against the given Postgres
// URL. Pool sizing matches the request-per-call model: handlers borrow
// a connection per query, nothing holds one across requests.
func ConnectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// schema is applied idempotently at startup; safe to run on every boot.
const schema = `
CREATE TABLE IF NOT EXISTS trainers (
	id          BIGSERIAL PRIMARY KEY,
	phone       TEXT NOT NULL UNIQUE,
	username    TEXT NOT NULL UNIQUE,
	code_hash   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS trainer_profiles (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL UNIQUE REFERENCES trainers(id),
	gym_name    TEXT NOT NULL DEFAULT '',
	bio         TEXT NOT NULL DEFAULT '',
	address     TEXT NOT NULL DEFAULT '',
	instagram   TEXT NOT NULL DEFAULT '',
	telegram    TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS students (
	id                 BIGSERIAL PRIMARY KEY,
	trainer_id         BIGINT NOT NULL REFERENCES trainers(id),
	name               TEXT NOT NULL,
	phone              TEXT NOT NULL,
	gender             TEXT NOT NULL DEFAULT '',
	age                INT NOT NULL DEFAULT 0,
	height             DOUBLE PRECISION NOT NULL DEFAULT 0,
	weight             DOUBLE PRECISION NOT NULL DEFAULT 0,
	goal_type          TEXT NOT NULL DEFAULT '',
	activity_level     TEXT NOT NULL DEFAULT '',
	medical_conditions TEXT NOT NULL DEFAULT '',
	is_active          BOOLEAN NOT NULL DEFAULT TRUE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (phone, trainer_id)
);

CREATE TABLE IF NOT EXISTS exercise_types (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exercise_categories (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	type_id     BIGINT REFERENCES exercise_types(id),
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exercises (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	category_id BIGINT REFERENCES exercise_categories(id),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS meal_categories (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS meals (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	category_id BIGINT REFERENCES meal_categories(id),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS supplement_categories (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS supplements (
	id          BIGSERIAL PRIMARY KEY,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	category_id BIGINT REFERENCES supplement_categories(id),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS student_exercise_programs (
	id           BIGSERIAL PRIMARY KEY,
	student_id   BIGINT NOT NULL REFERENCES students(id),
	trainer_id   BIGINT NOT NULL REFERENCES trainers(id),
	exercise_id  BIGINT NOT NULL REFERENCES exercises(id),
	day_of_week  INT NOT NULL,
	sets         INT NOT NULL DEFAULT 0,
	reps         TEXT NOT NULL DEFAULT '',
	weight       TEXT NOT NULL DEFAULT '',
	rest_seconds INT NOT NULL DEFAULT 0,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS student_meal_plans (
	id           BIGSERIAL PRIMARY KEY,
	student_id   BIGINT NOT NULL REFERENCES students(id),
	trainer_id   BIGINT NOT NULL REFERENCES trainers(id),
	meal_id      BIGINT NOT NULL REFERENCES meals(id),
	day_of_week  INT NOT NULL,
	meal_time    TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT '',
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS student_supplements (
	id            BIGSERIAL PRIMARY KEY,
	student_id    BIGINT NOT NULL REFERENCES students(id),
	trainer_id    BIGINT NOT NULL REFERENCES trainers(id),
	supplement_id BIGINT NOT NULL REFERENCES supplements(id),
	dosage        TEXT NOT NULL DEFAULT '',
	frequency     TEXT NOT NULL DEFAULT '',
	instructions  TEXT NOT NULL DEFAULT '',
	is_completed  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS student_history (
	id          BIGSERIAL PRIMARY KEY,
	student_id  BIGINT NOT NULL,
	trainer_id  BIGINT NOT NULL REFERENCES trainers(id),
	action      TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id   BIGINT,
	changes     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS support_tickets (
	id            BIGSERIAL PRIMARY KEY,
	ticket_number TEXT NOT NULL UNIQUE,
	student_id    BIGINT NOT NULL REFERENCES students(id),
	trainer_id    BIGINT NOT NULL REFERENCES trainers(id),
	subject       TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT 'general',
	priority      TEXT NOT NULL DEFAULT 'medium',
	status        TEXT NOT NULL DEFAULT 'open',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ticket_responses (
	id         BIGSERIAL PRIMARY KEY,
	ticket_id  BIGINT NOT NULL REFERENCES support_tickets(id),
	sender     TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS support_messages (
	id         BIGSERIAL PRIMARY KEY,
	student_id BIGINT NOT NULL REFERENCES students(id),
	trainer_id BIGINT NOT NULL REFERENCES trainers(id),
	sender     TEXT NOT NULL,
	message    TEXT NOT NULL,
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_preferences (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT,
	session_id TEXT,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS auth_sessions (
	token           TEXT PRIMARY KEY,
	role            TEXT NOT NULL,
	trainer_id      BIGINT,
	student_id      BIGINT,
	phone           TEXT NOT NULL DEFAULT '',
	remember_me     BOOLEAN NOT NULL DEFAULT FALSE,
	failed_attempts INT NOT NULL DEFAULT 0,
	locked_until    TIMESTAMPTZ,
	expires_at      TIMESTAMPTZ NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exercise_media (
	id           BIGSERIAL PRIMARY KEY,
	exercise_id  BIGINT NOT NULL REFERENCES exercises(id),
	trainer_id   BIGINT NOT NULL REFERENCES trainers(id),
	object_key   TEXT NOT NULL,
	file_name    TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	size         BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- A plain UNIQUE over the nullable identity columns would never fire:
-- Postgres treats NULLs as distinct. Partial indexes per identity kind
-- make the insert race in the preference upsert actually conflict.
CREATE UNIQUE INDEX IF NOT EXISTS idx_prefs_user_key
	ON user_preferences (user_id, key) WHERE session_id IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_prefs_session_key
	ON user_preferences (session_id, key) WHERE user_id IS NULL;

CREATE INDEX IF NOT EXISTS idx_students_trainer ON students (trainer_id);
CREATE INDEX IF NOT EXISTS idx_programs_student_day ON student_exercise_programs (student_id, day_of_week);
CREATE INDEX IF NOT EXISTS idx_meal_plans_student_day ON student_meal_plans (student_id, day_of_week);
CREATE INDEX IF NOT EXISTS idx_supplements_student ON student_supplements (student_id);
CREATE INDEX IF NOT EXISTS idx_history_student ON student_history (student_id);
CREATE INDEX IF NOT EXISTS idx_tickets_trainer ON support_tickets (trainer_id);
CREATE INDEX IF NOT EXISTS idx_messages_trainer ON support_messages (trainer_id);
`

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
