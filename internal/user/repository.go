package user

import (
	"context"
	"database/sql"
	"strings"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, name, password, role, street, city, state, zip_code, phone, created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Password, &u.Role,
		&u.Street, &u.City, &u.State, &u.ZipCode, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password, role, street, city, state, zip_code, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		u.Email, u.Name, u.Password, u.Role,
		u.Street, u.City, u.State, u.ZipCode, u.Phone,
	)

	created, err := scanUser(row)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *repository) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			name = COALESCE($1, name),
			street = COALESCE($2, street),
			city = COALESCE($3, city),
			state = COALESCE($4, state),
			zip_code = COALESCE($5, zip_code),
			phone = COALESCE($6, phone),
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+userColumns,
		params.Name, params.Street, params.City,
		params.State, params.ZipCode, params.Phone, id,
	)
	return scanUser(row)
}
