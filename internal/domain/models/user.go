// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values for User.Status. Toggling flips between the two;
// there is no intermediate or terminal state.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is the sole entity of the account service.
//
// PasswordHash is tagged `json:"-"` so it can never appear in a
// response payload; list queries additionally project it out at the
// database level. Email is unique (enforced by a unique index) and
// matched case-sensitively.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"fullName"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // folded copy for sorted listings
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`     // user | admin
	Status       string             `bson:"status" json:"status"` // active | inactive
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidRole reports whether value is a recognized role.
func IsValidRole(value string) bool {
	return value == RoleUser || value == RoleAdmin
}

// IsValidStatus reports whether value is a recognized status.
func IsValidStatus(value string) bool {
	return value == StatusActive || value == StatusInactive
}

// ToggledStatus returns the opposite status: active becomes inactive
// and anything else becomes active.
func ToggledStatus(current string) string {
	if current == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
