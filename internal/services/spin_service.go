package services

import (
	"context"
	"fmt"
	"time"

	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/repositories"
	"github.com/subspace-app/reward-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SpinServiceImpl implements SpinService
var _ SpinService = (*SpinServiceImpl)(nil)

// SpinServiceImpl handles reward-wheel business logic
type SpinServiceImpl struct {
	spinRepo    repositories.SpinRepository
	accountRepo repositories.AccountRepository
}

// NewSpinService creates a new SpinServiceImpl
func NewSpinService(spinRepo repositories.SpinRepository, accountRepo repositories.AccountRepository) *SpinServiceImpl {
	return &SpinServiceImpl{
		spinRepo:    spinRepo,
		accountRepo: accountRepo,
	}
}

// Spin performs one full wheel draw.
//
// Order matters: validation fails fast before any external call or random
// draw; the single recipient lookup happens before any randomness; the record
// is written strictly after generation completes, so there is never a record
// without a draw or a reported draw without a record. On a failed write the
// generated values are discarded, not retried.
func (s *SpinServiceImpl) Spin(ctx context.Context, req *models.SpinRequest) (*models.SpinResult, error) {
	// 1. Validate the request (pure, no side effects)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Eligibility: the recipient must exist and hold the dominant role
	recipient, err := s.lookupRecipient(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !recipient.EligibleForPayout() {
		slog.Warn("Spin rejected: recipient not eligible for payouts",
			"recipientId", req.RecipientID, "role", recipient.Role)
		return nil, models.ErrNotEligible
	}

	// 3. Generate one candidate amount per wheel segment. Each amount is an
	// independent uniform draw over [MinAmount, MaxAmount], rounded to cents;
	// values are not guaranteed distinct and order is presentation order.
	segments := make([]float64, 0, req.SegmentCount)
	span := req.MaxAmount - req.MinAmount
	for i := 0; i < req.SegmentCount; i++ {
		u, err := utils.SecureUnitFloat()
		if err != nil {
			slog.Error("Spin: secure random source failed", "error", err)
			return nil, fmt.Errorf("failed to generate segment value: %w", err)
		}
		segments = append(segments, utils.RoundToCents(req.MinAmount+u*span))
	}

	// 4. Select the winning index independently of the segment values. The
	// winning amount is read off the generated array, never re-drawn.
	winningIndex, err := utils.SecureIntn(req.SegmentCount)
	if err != nil {
		slog.Error("Spin: secure random source failed", "error", err)
		return nil, fmt.Errorf("failed to select winning segment: %w", err)
	}
	winningAmount := segments[winningIndex]

	// 5. Persist the audit record in PENDING. Status transitions past PENDING
	// belong to the downstream payment collaborator.
	record := &models.SpinRecord{
		RequesterID:         req.RequesterID,
		RecipientID:         req.RecipientID,
		MinAmount:           req.MinAmount,
		MaxAmount:           req.MaxAmount,
		SegmentCount:        req.SegmentCount,
		SpinDurationSeconds: req.SpinDurationSeconds,
		WinningAmount:       winningAmount,
		Status:              models.SpinStatusPending,
	}
	if err := s.spinRepo.Create(ctx, record); err != nil {
		slog.Error("Spin: failed to persist spin record",
			"error", err, "requesterId", req.RequesterID, "recipientId", req.RecipientID)
		return nil, &models.PersistenceError{Err: err}
	}

	slog.Info("Spin completed",
		"spinId", record.ID.Hex(),
		"recipientId", req.RecipientID,
		"segments", req.SegmentCount,
		"winningAmount", winningAmount)

	return &models.SpinResult{
		WinningAmount: winningAmount,
		WinningIndex:  winningIndex,
		Segments:      segments,
		SpinID:        record.ID.Hex(),
	}, nil
}

// lookupRecipient resolves the recipient identifier against the account store.
// An unparsable identifier cannot reference any account, so it maps to the
// same not-found outcome as an absent document.
func (s *SpinServiceImpl) lookupRecipient(ctx context.Context, recipientID string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, models.ErrAccountNotFound
	}
	account, err := s.accountRepo.FindByID(ctx, oid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAccountNotFound
		}
		slog.Error("Spin: recipient lookup failed", "error", err, "recipientId", recipientID)
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	return account, nil
}

// GetSpinByID retrieves a spin record by its ID
func (s *SpinServiceImpl) GetSpinByID(ctx context.Context, id primitive.ObjectID) (*models.SpinRecord, error) {
	record, err := s.spinRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		slog.Error("Failed to get spin by ID", "error", err, "spinId", id.Hex())
		return nil, fmt.Errorf("failed to retrieve spin record: %w", err)
	}
	return record, nil
}

// GetSpinsByRecipient retrieves spin records for a recipient
func (s *SpinServiceImpl) GetSpinsByRecipient(ctx context.Context, recipientID string, page, limit int) ([]*models.SpinRecord, error) {
	records, err := s.spinRepo.FindByRecipient(ctx, recipientID, page, limit)
	if err != nil {
		slog.Error("Failed to get spins by recipient", "error", err, "recipientId", recipientID)
		return nil, fmt.Errorf("failed to retrieve spin records: %w", err)
	}
	return records, nil
}

// GetSpinsByRequester retrieves spin records submitted by a requester
func (s *SpinServiceImpl) GetSpinsByRequester(ctx context.Context, requesterID string, page, limit int) ([]*models.SpinRecord, error) {
	records, err := s.spinRepo.FindByRequester(ctx, requesterID, page, limit)
	if err != nil {
		slog.Error("Failed to get spins by requester", "error", err, "requesterId", requesterID)
		return nil, fmt.Errorf("failed to retrieve spin records: %w", err)
	}
	return records, nil
}

// GetSpinsByStatus retrieves spin records in a given lifecycle status
func (s *SpinServiceImpl) GetSpinsByStatus(ctx context.Context, status models.SpinStatus, page, limit int) ([]*models.SpinRecord, error) {
	records, err := s.spinRepo.FindByStatus(ctx, status, page, limit)
	if err != nil {
		slog.Error("Failed to get spins by status", "error", err, "status", status)
		return nil, fmt.Errorf("failed to retrieve spin records: %w", err)
	}
	return records, nil
}

// GetSpinsByDateRange retrieves spin records created within a date range
func (s *SpinServiceImpl) GetSpinsByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.SpinRecord, error) {
	records, err := s.spinRepo.FindByDateRange(ctx, start, end, page, limit)
	if err != nil {
		slog.Error("Failed to get spins by date range", "error", err,
			"start", start.Format(time.RFC3339), "end", end.Format(time.RFC3339))
		return nil, fmt.Errorf("failed to retrieve spin records: %w", err)
	}
	return records, nil
}

// GetSpinCount returns the total number of persisted spin records
func (s *SpinServiceImpl) GetSpinCount(ctx context.Context) (int64, error) {
	count, err := s.spinRepo.Count(ctx)
	if err != nil {
		slog.Error("Failed to count spins", "error", err)
		return 0, fmt.Errorf("failed to count spin records: %w", err)
	}
	return count, nil
}
