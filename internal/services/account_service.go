package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AccountServiceImpl implements AccountService
var _ AccountService = (*AccountServiceImpl)(nil)

// AccountServiceImpl handles account-related business logic
type AccountServiceImpl struct {
	accountRepo repositories.AccountRepository
}

// NewAccountService creates a new AccountServiceImpl
func NewAccountService(accountRepo repositories.AccountRepository) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

// CreateAccount creates a new account
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.Username == "" {
		return errors.New("username is required")
	}
	if account.Role != models.RoleSubmissive && account.Role != models.RoleDominant {
		return fmt.Errorf("invalid role: %s", account.Role)
	}

	existing, err := s.accountRepo.FindByUsername(ctx, account.Username)
	if err != nil && err != mongo.ErrNoDocuments {
		slog.Error("CreateAccount: username lookup failed", "error", err, "username", account.Username)
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return errors.New("username already taken")
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		slog.Error("CreateAccount: failed to create account", "error", err, "username", account.Username)
		return fmt.Errorf("failed to create account: %w", err)
	}
	slog.Info("Account created", "accountId", account.ID.Hex(), "role", account.Role)
	return nil
}

// GetAccountByID retrieves an account by its ID
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAccountNotFound
		}
		slog.Error("Failed to get account by ID", "error", err, "accountId", id.Hex())
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}
	return account, nil
}

// GetAccountByUsername retrieves an account by username
func (s *AccountServiceImpl) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAccountNotFound
		}
		slog.Error("Failed to get account by username", "error", err, "username", username)
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}
	return account, nil
}

// GetAccountsByRole retrieves accounts holding a role, paginated
func (s *AccountServiceImpl) GetAccountsByRole(ctx context.Context, role models.Role, page, limit int) ([]*models.Account, error) {
	accounts, err := s.accountRepo.FindByRole(ctx, role, page, limit)
	if err != nil {
		slog.Error("Failed to get accounts by role", "error", err, "role", role)
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountCount returns the total number of accounts
func (s *AccountServiceImpl) GetAccountCount(ctx context.Context) (int64, error) {
	count, err := s.accountRepo.Count(ctx)
	if err != nil {
		slog.Error("Failed to count accounts", "error", err)
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
