package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository is the ownership-scoped task store. Every method takes the
// caller's userID and applies it inside the same SQL statement as the
// lookup or mutation, so a row owned by someone else behaves exactly like
// a row that does not exist.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByUser(ctx context.Context, userID string, completed *bool) ([]*models.Task, error)
	GetByID(ctx context.Context, userID string, id int64) (*models.Task, error)
	Update(ctx context.Context, userID string, id int64, upd models.TaskUpdate, updatedAt time.Time) (*models.Task, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}
