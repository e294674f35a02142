package models

import "time"

// Role is the access level assigned to a user account.
type Role string

const (
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "admin"
	// RoleUser grants regular read-write access.
	RoleUser Role = "user"
	// RoleReadOnly grants read-only access.
	RoleReadOnly Role = "readonly"
)

// Valid reports whether the role is one of the known access levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleReadOnly:
		return true
	}

	return false
}

// AdminUsername is the sentinel bootstrap account. It is seeded at provisioning
// time with a digest of the literal string "admin" and is used to detect
// first-run state. The account must never be hard-deleted.
const AdminUsername = "admin"

// User represents a user account in the system.
// Accounts are created either locally (seeded admin, admin-created users) or
// auto-provisioned on first successful SSO login. SSO-provisioned accounts
// carry no local password digest.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Username is the unique login name. For SSO-provisioned accounts this is
	// the asserted email address.
	Username string `gorm:"unique;size:255;not null" json:"username"`
	// HashedPassword is the bcrypt digest for local authentication. Empty for
	// accounts that never set a local password.
	HashedPassword string `gorm:"column:hashed_password;size:255" json:"-"`
	// UserEmail is the unique email address, if known.
	UserEmail *string `gorm:"column:user_email;unique;size:255" json:"user_email,omitempty"`
	// Role is the access level (admin, user, readonly).
	Role Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// Active indicates whether the account may log in.
	Active bool `gorm:"not null;default:true" json:"active"`
	// AddedByUid references the user that created this account, if any.
	AddedByUid *uint64 `gorm:"column:added_by_uid" json:"added_by_uid,omitempty"`
	// UpdatedByUid references the user that last modified this account, if any.
	UpdatedByUid *uint64 `gorm:"column:updated_by_uid" json:"updated_by_uid,omitempty"`
	// CreatedAt is the creation timestamp (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm table name.
func (User) TableName() string {
	return "users"
}
