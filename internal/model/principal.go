package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSales      Role = "SALES"
	RoleAccountant Role = "ACCOUNTANT"
	RoleViewer     Role = "VIEWER"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanSell covers contract, pricing and billboard writes.
func (p Principal) CanSell() bool { return p.Role == RoleAdmin || p.Role == RoleSales }

func (p Principal) CanCollect() bool { return p.Role == RoleAdmin || p.Role == RoleAccountant }

func (p Principal) CanRead() bool {
	switch p.Role {
	case RoleAdmin, RoleSales, RoleAccountant, RoleViewer:
		return true
	}
	return false
}
