package services

import (
	"context"
	"time"

	"github.com/subspace-app/reward-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpinService defines the interface for reward-wheel operations
type SpinService interface {
	// Spin runs one full draw: validation, eligibility, segment generation,
	// winner selection and persistence of the audit record
	Spin(ctx context.Context, req *models.SpinRequest) (*models.SpinResult, error)

	// GetSpinByID retrieves a persisted spin record by its ID
	GetSpinByID(ctx context.Context, id primitive.ObjectID) (*models.SpinRecord, error)

	// GetSpinsByRecipient retrieves spin records for a recipient
	GetSpinsByRecipient(ctx context.Context, recipientID string, page, limit int) ([]*models.SpinRecord, error)

	// GetSpinsByRequester retrieves spin records submitted by a requester
	GetSpinsByRequester(ctx context.Context, requesterID string, page, limit int) ([]*models.SpinRecord, error)

	// GetSpinsByStatus retrieves spin records in a given lifecycle status
	GetSpinsByStatus(ctx context.Context, status models.SpinStatus, page, limit int) ([]*models.SpinRecord, error)

	// GetSpinsByDateRange retrieves spin records created within a date range
	GetSpinsByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.SpinRecord, error)

	// GetSpinCount returns the total number of persisted spin records
	GetSpinCount(ctx context.Context) (int64, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountsByRole(ctx context.Context, role models.Role, page, limit int) ([]*models.Account, error)
	GetAccountCount(ctx context.Context) (int64, error)
}
