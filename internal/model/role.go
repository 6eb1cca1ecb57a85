package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role represents user roles in the system. Names are stored upper-case.
type Role struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Permissions datatypes.JSONMap `json:"permissions,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

const (
	RoleAdmin   = "ADMINISTRADOR"
	RoleManager = "GERENTE"
	RoleCashier = "CAJERO"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Name:        RoleAdmin,
		Description: "Full system access",
		Permissions: datatypes.JSONMap{"all": true},
	},
	{
		Name:        RoleManager,
		Description: "Manages products, categories and suppliers",
		Permissions: datatypes.JSONMap{"products": "write", "categories": "write", "suppliers": "write"},
	},
	{
		Name:        RoleCashier,
		Description: "Read-only access to the catalogue",
		Permissions: datatypes.JSONMap{"products": "read"},
	},
}

func (r *Role) BeforeSave(tx *gorm.DB) error {
	r.Name = strings.ToUpper(strings.TrimSpace(r.Name))
	return nil
}

// RoleSummary is the public listing shape of a role.
type RoleSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
