package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "password", "role",
		"street", "city", "state", "zip_code", "phone",
		"created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := userRows().AddRow(
			1, "a@b.c", "A", "hash", "customer",
			"", "", "", "", "", time.Now(), time.Now(),
		)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("a@b.c", "A", "hash", Role("customer"), "", "", "", "", "").
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), User{
			Email: "a@b.c", Name: "A", Password: "hash", Role: RoleCustomer,
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err := repo.Create(context.Background(), User{Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		rows := userRows().AddRow(
			2, "x@y.z", "X", "hash", "admin",
			"", "", "", "", "", time.Now(), time.Now(),
		)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("x@y.z").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "x@y.z")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("none@y.z").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(context.Background(), "none@y.z")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	name := "Renamed"

	rows := userRows().AddRow(
		3, "x@y.z", "Renamed", "hash", "customer",
		"", "", "", "", "", time.Now(), time.Now(),
	)
	mock.ExpectQuery("UPDATE users SET").
		WillReturnRows(rows)

	u, err := repo.UpdateProfile(context.Background(), 3, UpdateProfileParams{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
}
