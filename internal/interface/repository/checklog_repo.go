package repository

import (
	"context"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCheckLogRepository implements the CheckLogRepository interface
type MongoCheckLogRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckLogRepository creates a new MongoDB check-log repository
func NewMongoCheckLogRepository(db *mongo.Database) repository.CheckLogRepository {
	collection := db.Collection("checkLogs")

	ctx := context.Background()

	routeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "routeId", Value: 1},
			{Key: "checkedAt", Value: -1},
		},
	}

	foundIndex := mongo.IndexModel{
		Keys: bson.M{"hasTickets": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		routeIndex,
		foundIndex,
	})

	return &MongoCheckLogRepository{
		collection: collection,
	}
}

// Save archives one check snapshot
func (r *MongoCheckLogRepository) Save(ctx context.Context, snapshot *entity.CheckSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, snapshot)
	return err
}

// FindRecentByRoute returns the latest snapshots for a route, newest first
func (r *MongoCheckLogRepository) FindRecentByRoute(ctx context.Context, routeID int64, limit int) ([]*entity.CheckSnapshot, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"routeId": routeID}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "checkedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshots []*entity.CheckSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}

	return snapshots, nil
}
