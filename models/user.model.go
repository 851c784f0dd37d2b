package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(s), nil
	}
	return "", ErrValidation
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'buyer'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// UserResponse is the principal placed into c.Locals("user") by the auth
// middleware. It is immutable for the lifetime of a request; role switching
// is a new request with a new token, never a mutation of this value.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

func FilterUserRecord(user *User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func (u UserResponse) IsAdmin() bool  { return u.Role == RoleAdmin }
func (u UserResponse) IsSeller() bool { return u.Role == RoleSeller }
func (u UserResponse) IsBuyer() bool  { return u.Role == RoleBuyer }
