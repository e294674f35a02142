package models

import "time"

// EulaID is the fixed primary key of the singleton EULA row.
const EulaID = 1

// EULA is the singleton end-user license agreement acceptance record.
// Exactly one row with ID EulaID exists at all times; it is seeded at
// provisioning time and only ever mutated through accept/reject.
type EULA struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Accepted indicates whether the agreement has been accepted.
	Accepted bool `gorm:"not null;default:false" json:"accepted"`
	// AcceptedAt is set when the agreement was last accepted.
	AcceptedAt *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	// CreatedAt is the creation timestamp (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name.
func (EULA) TableName() string {
	return "eula"
}
