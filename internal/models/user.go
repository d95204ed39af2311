package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string                      `gorm:"uniqueIndex;not null" json:"email"`
	Password  string                      `json:"-"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RoleSet returns the persisted roles with the implicit base role
// appended, de-duplicated, insertion order preserved.
func (u *User) RoleSet() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]bool, len(u.Roles)+1)
	for _, r := range u.Roles {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}
	if !seen[RoleUser] {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleSet() {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole records a role on the user. Adding an already-held role is a
// no-op. Reports whether the stored role list changed.
func (u *User) AddRole(role string) bool {
	if u.HasRole(role) {
		return false
	}
	u.Roles = append(u.Roles, role)
	return true
}
