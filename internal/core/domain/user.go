package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient       Role = "client"
	RolePhotographer Role = "photographer"
	RoleAdmin        Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RolePhotographer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the resolved current user handed over by the auth provider.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   Role
}
