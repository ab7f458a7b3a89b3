package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the embedded migrations.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	scripts, err := migrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, script := range scripts {
		if _, err := db.ExecContext(ctx, script); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, email string, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	q := `
	INSERT INTO users (id, email, password_hash, total_score, created_at)
	VALUES (?, ?, ?, 0, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, user.ID, user.Email, user.PasswordHash, time.Now().UnixMilli()); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, &ErrEmailExists{}
		}
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}
	return user, nil
}

func (r *SQLiteRepository) EnsureUser(ctx context.Context, id string, email string) (*models.User, error) {
	q := `
	INSERT INTO users (id, email, total_score, created_at)
	VALUES (?, ?, 0, ?)
	ON CONFLICT (id) DO NOTHING;
	`
	if _, err := r.db.ExecContext(ctx, q, id, email, time.Now().UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to ensure user: %v", err)
	}
	return r.GetUser(ctx, id)
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	q := `
	SELECT id, email, password_hash, total_score FROM users WHERE id = ?;
	`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
	SELECT id, email, password_hash, total_score FROM users WHERE email = ?;
	`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.TotalScore); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}
	return user, nil
}

func (r *SQLiteRepository) ListSaves(ctx context.Context, userID string) ([]*models.Save, error) {
	q := `
	SELECT id, payload, created_at FROM saves WHERE user_id = ? ORDER BY created_at, rowid;
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
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

func (r *SQLiteRepository) CreateSave(ctx context.Context, userID string, payload []byte) (*models.Save, error) {
	save := &models.Save{
		ID:        uuid.NewString(),
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.UnixMilli(time.Now().UnixMilli()).UTC(),
	}
	q := `
	INSERT INTO saves (id, user_id, payload, created_at)
	VALUES (?, ?, ?, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, save.ID, userID, compressPayload(payload), save.CreatedAt.UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to insert save: %v", err)
	}
	return save, nil
}

func (r *SQLiteRepository) DeleteSave(ctx context.Context, userID string, saveID string) error {
	q := `
	DELETE FROM saves WHERE id = ? AND user_id = ?;
	`
	result, err := r.db.ExecContext(ctx, q, saveID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete save: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if affected == 0 {
		return &ErrNotFound{}
	}
	return nil
}
