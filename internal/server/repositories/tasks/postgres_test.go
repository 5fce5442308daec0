package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

const ownerID = "3f0b9a6e-0000-0000-0000-000000000001"

var taskColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^INSERT\s+INTO\s+tasks\s*\(user_id,\s*title,\s*description,\s*completed,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id\s*$`

	mock.ExpectQuery(q).
		WithArgs(ownerID, "T", "", false, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	task := &models.Task{UserID: ownerID, Title: "T", CreatedAt: now, UpdatedAt: now}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Completed {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestListByUser_All(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*description,\s*completed,\s*created_at,\s*updated_at\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`

	rows := sqlmock.NewRows(taskColumns).
		AddRow(int64(1), ownerID, "a", "", false, now, now).
		AddRow(int64(2), ownerID, "b", "desc", true, now, now)
	mock.ExpectQuery(q).WithArgs(ownerID).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), ownerID, nil)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_CompletedOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+completed\s*=\s*\$2\s+ORDER\s+BY\s+id\s*$`

	rows := sqlmock.NewRows(taskColumns).
		AddRow(int64(2), ownerID, "b", "", true, now, now)
	mock.ExpectQuery(q).WithArgs(ownerID, true).WillReturnRows(rows)

	completed := true
	got, err := repo.ListByUser(context.Background(), ownerID, &completed)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || !got[0].Completed {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM tasks`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	got, err := repo.ListByUser(context.Background(), ownerID, nil)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %+v", got)
	}
}

const getQ = `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(taskColumns).
		AddRow(int64(5), ownerID, "X", "", false, now, now)
	mock.ExpectQuery(getQ).WithArgs(int64(5), ownerID).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), ownerID, 5)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "X" || got.UserID != ownerID {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestGetByID_OtherOwnerLooksAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The row exists for another user; the scoped query simply matches nothing.
	mock.ExpectQuery(getQ).WithArgs(int64(5), "intruder").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "intruder", 5)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

const updateQ = `(?s)^UPDATE\s+tasks\s+SET\s+title\s*=\s*COALESCE\(\$3,\s*title\),\s*description\s*=\s*COALESCE\(\$4,\s*description\),\s*completed\s*=\s*COALESCE\(\$5,\s*completed\),\s*updated_at\s*=\s*\$6\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING\s+.*$`

func TestUpdate_PartialFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	title := "renamed"
	rows := sqlmock.NewRows(taskColumns).
		AddRow(int64(5), ownerID, "renamed", "old desc", false, now.Add(-time.Hour), now)
	mock.ExpectQuery(updateQ).
		WithArgs(int64(5), ownerID, &title, (*string)(nil), (*bool)(nil), now).
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), ownerID, 5, models.TaskUpdate{Title: &title}, now)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "renamed" || got.Description != "old desc" {
		t.Fatalf("unexpected task: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at not refreshed: %v", got.UpdatedAt)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	completed := true
	mock.ExpectQuery(updateQ).
		WithArgs(int64(5), "intruder", (*string)(nil), (*string)(nil), &completed, now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "intruder", 5, models.TaskUpdate{Completed: &completed}, now)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

const deleteQ = `(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestDelete_RemovesOwnedRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs(int64(5), ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), ownerID, 5)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report success")
	}
}

func TestDelete_NoMatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs(int64(5), "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "intruder", 5)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if ok {
		t.Fatal("expected delete to report no match")
	}
}
