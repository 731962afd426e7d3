package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents an account's platform role
type Role string

const (
	RoleSubmissive Role = "SUBMISSIVE"
	RoleDominant   Role = "DOMINANT"
)

// Account represents a platform account as seen by the reward service.
// The full profile entity is owned externally; only the fields needed for
// payout eligibility are modelled here.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EligibleForPayout reports whether the account can receive wheel-spin payouts
func (a *Account) EligibleForPayout() bool {
	return a.Role == RoleDominant
}
