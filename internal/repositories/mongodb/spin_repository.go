package mongodb

import (
	"context"
	"time"

	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SpinRepository implements the repositories.SpinRepository interface
type SpinRepository struct {
	collection *mongo.Collection
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *mongo.Database) repositories.SpinRepository {
	return &SpinRepository{
		collection: db.Collection("spins"),
	}
}

// Create creates a new spin record and sets the store-assigned ID on the model
func (r *SpinRepository) Create(ctx context.Context, record *models.SpinRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

// FindByID finds a spin record by ID
func (r *SpinRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SpinRecord, error) {
	var record models.SpinRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByRecipient finds spin records by recipient ID with pagination
func (r *SpinRepository) FindByRecipient(ctx context.Context, recipientID string, page, limit int) ([]*models.SpinRecord, error) {
	return r.find(ctx, bson.M{"recipientId": recipientID}, page, limit)
}

// FindByRequester finds spin records by requester ID with pagination
func (r *SpinRepository) FindByRequester(ctx context.Context, requesterID string, page, limit int) ([]*models.SpinRecord, error) {
	return r.find(ctx, bson.M{"requesterId": requesterID}, page, limit)
}

// FindByStatus finds spin records by status with pagination
func (r *SpinRepository) FindByStatus(ctx context.Context, status models.SpinStatus, page, limit int) ([]*models.SpinRecord, error) {
	return r.find(ctx, bson.M{"status": status}, page, limit)
}

// FindByDateRange finds spin records created within a date range with pagination
func (r *SpinRepository) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.SpinRecord, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	return r.find(ctx, filter, page, limit)
}

// Count counts all spin records
func (r *SpinRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *SpinRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.SpinRecord, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.SpinRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
