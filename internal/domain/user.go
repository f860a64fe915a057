package domain

import "time"

// Role clasifica a los usuarios de la plataforma.
type Role string

const (
	RoleTourist  Role = "tourist"
	RoleGuide    Role = "guide"
	RoleVendor   Role = "vendor"
	RoleOfficial Role = "official"
	RoleAdmin    Role = "admin"
)

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleGuide, RoleVendor, RoleOfficial, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          Role      `json:"role"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	IsActive      bool      `json:"is_active"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
