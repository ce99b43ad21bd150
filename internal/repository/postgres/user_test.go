package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository/postgres"
)

var userCols = []string{"id", "email", "first_name", "last_name", "password_hash", "role"}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{Email: "a@b.com", FirstName: "Ann", LastName: "Lee", PasswordHash: "h", Role: domain.RoleCustomer}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("a@b.com", "Ann", "Lee", "h", "CUSTOMER").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		assert.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		u := &domain.User{Email: "a@b.com", Role: domain.RoleCustomer}
		mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(ctx, u), domain.ErrEmailTaken)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
		WithArgs("A@B.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "a@b.com", "Ann", "Lee", "h", "MANAGER"))

	u, err := repo.GetByEmail(ctx, "A@B.com")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)

	mock.ExpectQuery("FROM users").WithArgs("none@b.com").WillReturnRows(sqlmock.NewRows(userCols))
	_, err = repo.GetByEmail(ctx, "none@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_UpdateRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET role").WithArgs("MANAGER", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateRole(context.Background(), 5, domain.RoleManager))

	mock.ExpectExec("UPDATE users SET role").WithArgs("MANAGER", int64(6)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateRole(context.Background(), 6, domain.RoleManager), domain.ErrNotFound)

	assert.ErrorIs(t, repo.UpdateRole(context.Background(), 5, domain.Role("ADMIN")), domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
