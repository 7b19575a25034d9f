package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin          = "admin"
	RoleWarehouseStaff = "warehouse-staff"
	RoleRequester      = "requester"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, warehouse-staff, requester
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWarehouseStaff, RoleRequester:
		return true
	}
	return false
}
