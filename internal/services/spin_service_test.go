package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeAccountRepo is an in-memory AccountRepository for tests
type fakeAccountRepo struct {
	accounts    map[primitive.ObjectID]*models.Account
	findErr     error
	lookupCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[primitive.ObjectID]*models.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	f.lookupCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return account, nil
}

func (f *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeAccountRepo) FindByRole(ctx context.Context, role models.Role, page, limit int) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range f.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *models.Account) error { return nil }
func (f *fakeAccountRepo) Delete(ctx context.Context, id primitive.ObjectID) error   { return nil }
func (f *fakeAccountRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.accounts)), nil
}

// fakeSpinRepo is an in-memory SpinRepository for tests
type fakeSpinRepo struct {
	records     []*models.SpinRecord
	createErr   error
	createCalls int
}

func (f *fakeSpinRepo) Create(ctx context.Context, record *models.SpinRecord) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeSpinRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SpinRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSpinRepo) FindByRecipient(ctx context.Context, recipientID string, page, limit int) ([]*models.SpinRecord, error) {
	var out []*models.SpinRecord
	for _, r := range f.records {
		if r.RecipientID == recipientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSpinRepo) FindByRequester(ctx context.Context, requesterID string, page, limit int) ([]*models.SpinRecord, error) {
	var out []*models.SpinRecord
	for _, r := range f.records {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSpinRepo) FindByStatus(ctx context.Context, status models.SpinStatus, page, limit int) ([]*models.SpinRecord, error) {
	var out []*models.SpinRecord
	for _, r := range f.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSpinRepo) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.SpinRecord, error) {
	return f.records, nil
}

func (f *fakeSpinRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func newTestService(t *testing.T) (*SpinServiceImpl, *fakeSpinRepo, *fakeAccountRepo, string) {
	t.Helper()
	accountRepo := newFakeAccountRepo()
	dominant := &models.Account{Username: "mistress_v", Role: models.RoleDominant}
	if err := accountRepo.Create(context.Background(), dominant); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	spinRepo := &fakeSpinRepo{}
	return NewSpinService(spinRepo, accountRepo), spinRepo, accountRepo, dominant.ID.Hex()
}

func validRequest(recipientID string) *models.SpinRequest {
	return &models.SpinRequest{
		RequesterID:         primitive.NewObjectID().Hex(),
		RecipientID:         recipientID,
		MinAmount:           5,
		MaxAmount:           50,
		SegmentCount:        8,
		SpinDurationSeconds: 5,
	}
}

func TestSpin_Success(t *testing.T) {
	svc, spinRepo, _, dominantID := newTestService(t)

	result, err := svc.Spin(context.Background(), validRequest(dominantID))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Segments) != 8 {
		t.Errorf("expected 8 segments, got %d", len(result.Segments))
	}
	for i, v := range result.Segments {
		if v < 5 || v > 50 {
			t.Errorf("segment %d = %v, outside [5, 50]", i, v)
		}
		if v != utils.RoundToCents(v) {
			t.Errorf("segment %d = %v, not rounded to cents", i, v)
		}
	}

	// The winning amount is a lookup into the segment array, not a fresh draw
	if result.WinningAmount != result.Segments[result.WinningIndex] {
		t.Errorf("winning amount %v does not equal segment at winning index %d (%v)",
			result.WinningAmount, result.WinningIndex, result.Segments[result.WinningIndex])
	}
	found := false
	for _, v := range result.Segments {
		if v == result.WinningAmount {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("winning amount %v not present in segments %v", result.WinningAmount, result.Segments)
	}

	if result.SpinID == "" {
		t.Error("expected a non-empty spin ID")
	}

	// A PENDING record with the matching winning amount must be persisted
	if len(spinRepo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(spinRepo.records))
	}
	record := spinRepo.records[0]
	if record.Status != models.SpinStatusPending {
		t.Errorf("expected status PENDING, got %s", record.Status)
	}
	if record.WinningAmount != result.WinningAmount {
		t.Errorf("persisted winning amount %v differs from result %v", record.WinningAmount, result.WinningAmount)
	}
	if record.SegmentCount != 8 || record.MinAmount != 5 || record.MaxAmount != 50 || record.SpinDurationSeconds != 5 {
		t.Errorf("persisted record does not mirror the request: %+v", record)
	}
}

func TestSpin_BoundaryValuesSucceed(t *testing.T) {
	cases := []struct {
		name     string
		segments int
		duration int
	}{
		{"min segments and duration", 2, 2},
		{"max segments and duration", 12, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, dominantID := newTestService(t)
			req := validRequest(dominantID)
			req.SegmentCount = tc.segments
			req.SpinDurationSeconds = tc.duration

			result, err := svc.Spin(context.Background(), req)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Segments) != tc.segments {
				t.Errorf("expected %d segments, got %d", tc.segments, len(result.Segments))
			}
		})
	}
}

func TestSpin_ValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*models.SpinRequest)
		wantCode models.ValidationCode
	}{
		{"missing requester", func(r *models.SpinRequest) { r.RequesterID = "" }, models.CodeMissingIdentifier},
		{"missing recipient", func(r *models.SpinRequest) { r.RecipientID = "" }, models.CodeMissingIdentifier},
		{"min equals max", func(r *models.SpinRequest) { r.MinAmount = 50; r.MaxAmount = 50 }, models.CodeInvalidRange},
		{"min above max", func(r *models.SpinRequest) { r.MinAmount = 60 }, models.CodeInvalidRange},
		{"too few segments", func(r *models.SpinRequest) { r.SegmentCount = 1 }, models.CodeInvalidSegmentCount},
		{"too many segments", func(r *models.SpinRequest) { r.SegmentCount = 13 }, models.CodeInvalidSegmentCount},
		{"duration too short", func(r *models.SpinRequest) { r.SpinDurationSeconds = 1 }, models.CodeInvalidDuration},
		{"duration too long", func(r *models.SpinRequest) { r.SpinDurationSeconds = 11 }, models.CodeInvalidDuration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, spinRepo, accountRepo, dominantID := newTestService(t)
			req := validRequest(dominantID)
			tc.mutate(req)

			_, err := svc.Spin(context.Background(), req)
			var vErr *models.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected a ValidationError, got %v", err)
			}
			if vErr.Code != tc.wantCode {
				t.Errorf("expected code %s, got %s", tc.wantCode, vErr.Code)
			}
			// Validation short-circuits before any external call
			if accountRepo.lookupCalls != 0 {
				t.Errorf("expected no account lookups, got %d", accountRepo.lookupCalls)
			}
			if spinRepo.createCalls != 0 {
				t.Errorf("expected no persistence calls, got %d", spinRepo.createCalls)
			}
		})
	}
}

func TestSpin_RecipientNotFound(t *testing.T) {
	svc, spinRepo, _, _ := newTestService(t)
	req := validRequest(primitive.NewObjectID().Hex())

	_, err := svc.Spin(context.Background(), req)
	if !errors.Is(err, models.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if spinRepo.createCalls != 0 {
		t.Errorf("expected no persistence calls, got %d", spinRepo.createCalls)
	}
}

func TestSpin_RecipientNotEligible(t *testing.T) {
	svc, spinRepo, accountRepo, _ := newTestService(t)
	sub := &models.Account{Username: "plain_user", Role: models.RoleSubmissive}
	if err := accountRepo.Create(context.Background(), sub); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	req := validRequest(sub.ID.Hex())

	_, err := svc.Spin(context.Background(), req)
	if !errors.Is(err, models.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
	if spinRepo.createCalls != 0 {
		t.Errorf("expected no persistence calls, got %d", spinRepo.createCalls)
	}
}

func TestSpin_PersistenceFailure(t *testing.T) {
	svc, spinRepo, _, dominantID := newTestService(t)
	spinRepo.createErr = errors.New("store unreachable")

	_, err := svc.Spin(context.Background(), validRequest(dominantID))
	var pErr *models.PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected a PersistenceError, got %v", err)
	}
	// No partial record is visible to a subsequent read
	if len(spinRepo.records) != 0 {
		t.Errorf("expected no visible records after failed write, got %d", len(spinRepo.records))
	}
}

func TestSpin_IndependentDraws(t *testing.T) {
	svc, _, _, dominantID := newTestService(t)

	first, err := svc.Spin(context.Background(), validRequest(dominantID))
	if err != nil {
		t.Fatalf("first spin failed: %v", err)
	}
	second, err := svc.Spin(context.Background(), validRequest(dominantID))
	if err != nil {
		t.Fatalf("second spin failed: %v", err)
	}

	// With 8 independent 32-bit draws over a 45-unit range, two identical
	// segment arrays mean the outputs are being cached or seeded.
	same := len(first.Segments) == len(second.Segments)
	if same {
		for i := range first.Segments {
			if first.Segments[i] != second.Segments[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Errorf("two spins produced identical segment arrays: %v", first.Segments)
	}
}

func TestGetSpinsByStatus(t *testing.T) {
	svc, _, _, dominantID := newTestService(t)

	if _, err := svc.Spin(context.Background(), validRequest(dominantID)); err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	pending, err := svc.GetSpinsByStatus(context.Background(), models.SpinStatusPending, 1, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected 1 pending record, got %d", len(pending))
	}

	paid, err := svc.GetSpinsByStatus(context.Background(), models.SpinStatusPaid, 1, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(paid) != 0 {
		t.Errorf("expected no paid records, got %d", len(paid))
	}
}
