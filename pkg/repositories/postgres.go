package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	if err := pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	scripts, err := migrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, script := range scripts {
		if _, err := pool.Exec(ctx, script); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, email string, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	q := `
	INSERT INTO users (id, email, password_hash, total_score, created_at)
	VALUES ($1, $2, $3, 0, $4);
	`
	if _, err := r.pool.Exec(ctx, q, user.ID, user.Email, user.PasswordHash, time.Now().UnixMilli()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, &ErrEmailExists{}
		}
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}
	return user, nil
}

func (r *PostgresRepository) EnsureUser(ctx context.Context, id string, email string) (*models.User, error) {
	q := `
	INSERT INTO users (id, email, total_score, created_at)
	VALUES ($1, $2, 0, $3)
	ON CONFLICT (id) DO NOTHING;
	`
	if _, err := r.pool.Exec(ctx, q, id, email, time.Now().UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to ensure user: %v", err)
	}
	return r.GetUser(ctx, id)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	q := `
	SELECT id, email, password_hash, total_score FROM users WHERE id = $1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
	SELECT id, email, password_hash, total_score FROM users WHERE email = $1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.TotalScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}
	return user, nil
}

func (r *PostgresRepository) ListSaves(ctx context.Context, userID string) ([]*models.Save, error) {
	q := `
	SELECT id::text, payload, created_at FROM saves WHERE user_id = $1 ORDER BY created_at, id;
	`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saves: %v", err)
	}
	defer rows.Close()

	saves := make([]*models.Save, 0)
	for rows.Next() {
		var id string
		var stored []byte
		var createdAt int64
		if err := rows.Scan(&id, &stored, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan save: %v", err)
		}
		payload, err := decompressPayload(stored)
		if err != nil {
			return nil, fmt.Errorf("failed to read save %s: %v", id, err)
		}
		saves = append(saves, &models.Save{
			ID:        id,
			UserID:    userID,
			Payload:   payload,
			CreatedAt: time.UnixMilli(createdAt).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saves: %v", err)
	}

	return saves, nil
}

func (r *PostgresRepository) CreateSave(ctx context.Context, userID string, payload []byte) (*models.Save, error) {
	save := &models.Save{
		ID:        uuid.NewString(),
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.UnixMilli(time.Now().UnixMilli()).UTC(),
	}
	q := `
	INSERT INTO saves (id, user_id, payload, created_at)
	VALUES ($1, $2, $3, $4);
	`
	if _, err := r.pool.Exec(ctx, q, save.ID, userID, compressPayload(payload), save.CreatedAt.UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to insert save: %v", err)
	}
	return save, nil
}

func (r *PostgresRepository) DeleteSave(ctx context.Context, userID string, saveID string) error {
	// ids that are not UUIDs cannot exist in the uuid column
	if _, err := uuid.Parse(saveID); err != nil {
		return &ErrNotFound{}
	}
	q := `
	DELETE FROM saves WHERE id = $1 AND user_id = $2;
	`
	tag, err := r.pool.Exec(ctx, q, saveID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete save: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{}
	}
	return nil
}
