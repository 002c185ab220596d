package models

import "time"

// Role identifies the kind of account attached to a session.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleUser       Role = "user"
	RoleOperator   Role = "operator"
)

// PermissionAll is the wildcard permission carried by superadmin accounts.
const PermissionAll = "all"

var roleLevels = map[Role]int{
	RoleOperator:   1,
	RoleUser:       2,
	RoleManager:    3,
	RoleAdmin:      4,
	RoleSuperAdmin: 5,
}

// Principal is the normalized record of the authenticated actor, built at
// login and mirrored into the session store for restoration.
type Principal struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	Plan        string    `json:"plan,omitempty"`
	Status      string    `json:"status,omitempty"`
	Permissions []string  `json:"permissions"`
	Website     *string   `json:"website,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	Socials     *Socials  `json:"socials,omitempty"`
	Contact     *Contact  `json:"contact,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Employees   *int      `json:"employees,omitempty"`
	FoundedYear *int      `json:"founded_year,omitempty"`
	LoginTime   time.Time `json:"login_time"`
}

// HasPermission reports whether the principal's permission set contains
// perm, honoring the "all" wildcard.
func (p *Principal) HasPermission(perm string) bool {
	if p == nil {
		return false
	}
	for _, granted := range p.Permissions {
		if granted == PermissionAll || granted == perm {
			return true
		}
	}
	return false
}

// CanAccess reports whether the principal's role is at least the required
// role in the role hierarchy.
func (p *Principal) CanAccess(required Role) bool {
	if p == nil {
		return false
	}
	return roleLevels[p.Role] >= roleLevels[required]
}

// IsSuperAdmin reports whether this is the back-office account.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}

// SuperAdmin represents a row of the super_admins table. PasswordHash is
// nil for legacy rows that predate hashed credentials.
type SuperAdmin struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Permissions  []string  `json:"permissions"`
	PasswordHash *string   `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal normalizes the admin row into the session record.
func (a *SuperAdmin) Principal() *Principal {
	name := a.Name
	if name == "" {
		name = "Super Administrador"
	}
	return &Principal{
		ID:          a.ID,
		Email:       a.Email,
		Name:        name,
		Role:        RoleSuperAdmin,
		Permissions: append([]string(nil), a.Permissions...),
		LoginTime:   time.Now(),
	}
}
