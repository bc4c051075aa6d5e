package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ     = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+user_number,\s*created_at\s*$`
	byEmailQ    = `(?s)^SELECT\s+id,\s*user_number,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+lower\(email\)\s*=\s*lower\(\$1\)\s*$`
	byIDQ       = `(?s)^SELECT\s+id,\s*user_number,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	testUserID  = "0b7e6c1a-43c2-4f1e-9d0a-6f2f1f0a9b11"
	testUserEml = "ann@example.com"
)

func userColumns() []string {
	return []string{"id", "user_number", "name", "email", "password_hash", "created_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_number", "created_at"}).AddRow(int64(7), created)
	mock.ExpectQuery(insertQ).
		WithArgs(testUserID, "Ann", testUserEml, []byte("hash")).
		WillReturnRows(rows)

	u := &models.User{ID: testUserID, Name: "Ann", Email: testUserEml, PasswordHash: []byte("hash")}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Number != 7 || !got.CreatedAt.Equal(created) || got.Name != "Ann" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs(testUserID, "Ann", testUserEml, []byte("hash")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_uidx"})

	_, err := repo.Create(context.Background(), &models.User{ID: testUserID, Name: "Ann", Email: testUserEml, PasswordHash: []byte("hash")})
	if !errors.Is(err, common.ErrUserExists) {
		t.Fatalf("want common.ErrUserExists, got %v", err)
	}
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want conflict kind, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs(testUserID, "Ann", testUserEml, []byte("hash")).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: testUserID, Name: "Ann", Email: testUserEml, PasswordHash: []byte("hash")})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(testUserID, int64(1), "Ann", testUserEml, []byte("hash"), time.Now())
	mock.ExpectQuery(byEmailQ).
		WithArgs(testUserEml).
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), testUserEml)
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != testUserID || got.Email != testUserEml || string(got.PasswordHash) != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byEmailQ).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(testUserID, int64(3), "Ann", testUserEml, []byte("hash"), time.Now())
	mock.ExpectQuery(byIDQ).
		WithArgs(testUserID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Number != 3 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQ).
		WithArgs(testUserID).
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), testUserID)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
