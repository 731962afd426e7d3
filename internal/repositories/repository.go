package repositories

import (
	"context"
	"time"

	"github.com/subspace-app/reward-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByRole(ctx context.Context, role models.Role, page, limit int) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// SpinRepository defines the interface for spin record data operations.
// Records are created once and never updated by this service; the payment
// collaborator owns status transitions, so no update method is exposed here.
type SpinRepository interface {
	Create(ctx context.Context, record *models.SpinRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SpinRecord, error)
	FindByRecipient(ctx context.Context, recipientID string, page, limit int) ([]*models.SpinRecord, error)
	FindByRequester(ctx context.Context, requesterID string, page, limit int) ([]*models.SpinRecord, error)
	FindByStatus(ctx context.Context, status models.SpinStatus, page, limit int) ([]*models.SpinRecord, error)
	FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.SpinRecord, error)
	Count(ctx context.Context) (int64, error)
}
