package domain

import "time"

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleMechanic UserRole = "mecanicien"
)

func (r UserRole) Valid() bool {
	return r == RoleClient || r == RoleMechanic
}

// swagger:model domain.User
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName" validate:"required,max=100"`
	LastName  string    `json:"lastName" validate:"required,max=100"`
	Address   string    `json:"address,omitempty" validate:"max=255"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	Role      UserRole  `json:"role" validate:"required,oneof=client mecanicien"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsMechanic() bool {
	return u.Role == RoleMechanic
}
