package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/elicaapp/elicappWeb/types"
)

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

func TestList_ReturnsAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
		AddRow(1, "Ana", "ana@x.com", now, now).
		AddRow(2, "Bob", "bob@x.com", now, now)
	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,\s*name,\s*email.*FROM\s+users.*ORDER\s+BY\s+id\s*$`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != 1 || users[0].Name != "Ana" || users[1].Email != "bob@x.com" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestList_EmptyTable(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"})
	mock.ExpectQuery(`(?s)^\s*SELECT.*FROM\s+users`).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestGetByID_Miss(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(7)
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users\s*\(name,\s*email,\s*created_at,\s*updated_at\).*RETURNING\s+id\s*$`).
		WithArgs("Ana", "ana@x.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	user, err := repo.Create(context.Background(), types.User{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID != 7 || user.Name != "Ana" || user.Email != "ana@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("expected audit timestamps to be set")
	}
}

func TestCreate_DBErrorPassesThrough(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	dbErr := errors.New("db down")
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WithArgs("Ana", "ana@x.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(dbErr)

	_, err := repo.Create(context.Background(), types.User{Name: "Ana", Email: "ana@x.com"})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestUpdate_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*UPDATE\s+users\s+SET\s+name\s*=\s*\$1.*WHERE\s+id\s*=\s*\$4\s*$`).
		WithArgs("Ana", "ana@x.com", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), types.User{ID: 42, Name: "Ana", Email: "ana@x.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_OverwritesRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*UPDATE\s+users\s+SET`).
		WithArgs("Bob", "bob@x.com", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := repo.Update(context.Background(), types.User{ID: 7, Name: "Bob", Email: "bob@x.com"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if user.Name != "Bob" || user.UpdatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestDelete_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
