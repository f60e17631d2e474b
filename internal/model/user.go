package model

import "time"

// Role classifies a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBanker   Role = "banker"
)

// User represents a registered user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Entries []LedgerEntry `json:"entries,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
