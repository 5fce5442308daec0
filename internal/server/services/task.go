// This file implements TaskService, the access guard in front of the task
// store: it validates input and forwards the caller's subject id to every
// repository call, so no task operation can run unscoped.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// TaskService provides the five guarded task operations. The userID argument
// of each method is the verified token subject, never client-supplied data.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create stores a new task owned by userID. Completed always starts false.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	repo := s.repomanager.Tasks(s.db)
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// List returns the caller's tasks, ordered by id ascending. statusFilter
// "completed" and "pending" narrow the result; any other value, including
// the empty string, lists everything. The leniency towards unknown values
// is inherited behavior, kept on purpose.
func (s *TaskService) List(ctx context.Context, userID, statusFilter string) ([]*models.Task, error) {
	var completed *bool
	switch statusFilter {
	case models.StatusFilterCompleted:
		v := true
		completed = &v
	case models.StatusFilterPending:
		v := false
		completed = &v
	}

	repo := s.repomanager.Tasks(s.db)
	result, err := repo.ListByUser(ctx, userID, completed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if result == nil {
		result = []*models.Task{}
	}
	return result, nil
}

// Get returns one of the caller's tasks. A task id that does not exist and
// one that belongs to another user are both common.ErrorNotFound.
func (s *TaskService) Get(ctx context.Context, userID string, id int64) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return task, nil
}

// Update applies a partial update to one of the caller's tasks. Only the
// supplied fields change; updated_at is refreshed.
func (s *TaskService) Update(ctx context.Context, userID string, id int64, upd models.TaskUpdate) (*models.Task, error) {
	if upd.Title != nil {
		if err := validateTitle(*upd.Title); err != nil {
			return nil, err
		}
	}
	if upd.Description != nil {
		if err := validateDescription(*upd.Description); err != nil {
			return nil, err
		}
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Update(ctx, userID, id, upd, time.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return task, nil
}

// ToggleComplete sets the completion flag of one of the caller's tasks,
// through the same guarded update path as Update.
func (s *TaskService) ToggleComplete(ctx context.Context, userID string, id int64, completed bool) (*models.Task, error) {
	return s.Update(ctx, userID, id, models.TaskUpdate{Completed: &completed})
}

// Delete removes one of the caller's tasks. A miss, whether the row is
// absent or owned by someone else, is common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, userID string, id int64) error {
	repo := s.repomanager.Tasks(s.db)
	ok, err := repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

// Length limits count characters, not bytes: a multibyte title within the
// limit must pass.
func validateTitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", common.ErrValidation, maxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", common.ErrValidation, maxDescriptionLen)
	}
	return nil
}
