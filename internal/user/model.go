package user

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        uint
	Email     string
	Name      string
	Password  string
	Role      Role
	Street    string
	City      string
	State     string
	ZipCode   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies who is performing an operation. Every service method
// that is role- or ownership-gated takes an Actor explicitly instead of
// reading it from ambient request state.
type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type RegisterParams struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	Street          string
	City            string
	State           string
	ZipCode         string
	Phone           string
}

type UpdateProfileParams struct {
	Name    *string
	Street  *string
	City    *string
	State   *string
	ZipCode *string
	Phone   *string
}
