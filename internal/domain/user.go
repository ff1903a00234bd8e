package domain

import "time"

type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleVendor     UserRole = "VENDOR"
	RoleBeautician UserRole = "BEAUTICIAN"
	RoleManager    UserRole = "MANAGER"
	RoleAdmin      UserRole = "ADMIN"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleBeautician, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email" validate:"required,email"`
	PasswordHash string        `json:"-"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone,omitempty"`
	Role         UserRole      `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
