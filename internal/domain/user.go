package domain

import (
	"time"
)

// User roles. Admin gates the back-office surface.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a user account document
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Name         string    `json:"name" bson:"name"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt"`
}

// IsAdmin reports whether the user may access the admin area.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
