package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpinStatus represents the lifecycle status of a spin record
type SpinStatus string

const (
	SpinStatusPending   SpinStatus = "PENDING"
	SpinStatusPaid      SpinStatus = "PAID"
	SpinStatusCancelled SpinStatus = "CANCELLED"
	SpinStatusFailed    SpinStatus = "FAILED"
)

// Wheel limits. Segments map to slices of the wheel UI, duration is how long
// the client animates the spin.
const (
	MinSegments = 2
	MaxSegments = 12
	MinDuration = 2
	MaxDuration = 10
)

// SpinRequest is the validated input for one wheel spin. Identifiers are
// foreign keys into the externally-owned account store.
type SpinRequest struct {
	RequesterID         string
	RecipientID         string
	MinAmount           float64
	MaxAmount           float64
	SegmentCount        int
	SpinDurationSeconds int
}

// Validate checks the request's domain constraints. It is a pure function of
// the request: no randomness is drawn and no external call is made before it
// passes.
func (r *SpinRequest) Validate() error {
	if r.RequesterID == "" || r.RecipientID == "" {
		return NewValidationError(CodeMissingIdentifier, "user_id and dom_id are required")
	}
	if !isFinite(r.MinAmount) || !isFinite(r.MaxAmount) {
		return NewValidationError(CodeInvalidInputType, "min_amount and max_amount must be finite numbers")
	}
	if r.MinAmount >= r.MaxAmount {
		return NewValidationError(CodeInvalidRange, "min_amount must be less than max_amount")
	}
	if r.SegmentCount < MinSegments || r.SegmentCount > MaxSegments {
		return NewValidationError(CodeInvalidSegmentCount, "segments must be between 2 and 12")
	}
	if r.SpinDurationSeconds < MinDuration || r.SpinDurationSeconds > MaxDuration {
		return NewValidationError(CodeInvalidDuration, "spin_duration must be between 2 and 10")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SpinRecord is the persisted, immutable audit row for one spin outcome.
// Created exactly once per successful draw in PENDING; the transition to a
// terminal status belongs to the downstream payment collaborator.
type SpinRecord struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RequesterID         string             `bson:"requesterId" json:"requesterId"`
	RecipientID         string             `bson:"recipientId" json:"recipientId"`
	MinAmount           float64            `bson:"minAmount" json:"minAmount"`
	MaxAmount           float64            `bson:"maxAmount" json:"maxAmount"`
	SegmentCount        int                `bson:"segmentCount" json:"segmentCount"`
	SpinDurationSeconds int                `bson:"spinDurationSeconds" json:"spinDurationSeconds"`
	WinningAmount       float64            `bson:"winningAmount" json:"winningAmount"`
	Status              SpinStatus         `bson:"status" json:"status"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SpinResult is what a successful draw returns to the caller. Segments holds
// every candidate amount in presentation order; WinningAmount is always the
// value at WinningIndex.
type SpinResult struct {
	WinningAmount float64
	WinningIndex  int
	Segments      []float64
	SpinID        string
}
