// Package tasks provides the PostgreSQL-backed, ownership-scoped task store.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a task and returns it with the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (user_id, title, description, completed, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// ListByUser returns the user's tasks ordered by id ascending. The order is
// insertion order and is deterministic across calls. A nil completed pointer
// lists everything; otherwise only rows with the matching completed flag.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, completed *bool) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY id
		 `
	args := []any{userID}

	if completed != nil {
		query =
			`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks
			 WHERE user_id = $1 AND completed = $2
			 ORDER BY id
			 `
		args = append(args, *completed)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &item.Completed,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the task only when it belongs to userID. A row owned by a
// different user yields common.ErrorNotFound, same as an absent row.
func (r *PostgresRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed,
		&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Update applies a partial update in one statement: nil fields keep their
// stored values, updated_at is always refreshed. The ownership predicate is
// part of the same UPDATE, so the check and the mutation are atomic with
// respect to the row's owner. Returns common.ErrorNotFound when no row
// matched the (id, user_id) pair.
func (r *PostgresRepository) Update(ctx context.Context, userID string, id int64, upd models.TaskUpdate, updatedAt time.Time) (*models.Task, error) {
	query :=
		`UPDATE tasks SET
		     title = COALESCE($3, title),
		     description = COALESCE($4, description),
		     completed = COALESCE($5, completed),
		     updated_at = $6
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, completed, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query,
		id, userID, upd.Title, upd.Description, upd.Completed, updatedAt).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed,
		&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Delete removes the task when it belongs to userID. Reports whether a row
// was actually deleted; false means absent or owned by someone else.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}
