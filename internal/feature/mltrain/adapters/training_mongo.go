// Package adapters implements the mltrain persistence boundary on MongoDB.
package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"trading_monitor/internal/feature/mltrain/domain/entity"
	"trading_monitor/internal/feature/mltrain/usecase"
)

type trainingMongo struct {
	col *mongo.Collection
}

var _ usecase.TrainingRepository = (*trainingMongo)(nil)

// NewTrainingRepository returns a TrainingRepository backed by the
// "ml_training" collection of db.
func NewTrainingRepository(db *mongo.Database) *trainingMongo {
	return &trainingMongo{col: db.Collection("ml_training")}
}

type trainingDoc struct {
	TrainingCount int       `bson:"training_count"`
	WinTrades     int       `bson:"win_trades"`
	TotalTrades   int       `bson:"total_trades"`
	WinRate       float64   `bson:"win_rate"`
	LastProfit    float64   `bson:"last_profit"`
	Symbol        string    `bson:"symbol"`
	Timestamp     int64     `bson:"timestamp"`
	CreatedAt     time.Time `bson:"created_at"`
}

// Insert appends one training record; reports are append-only.
func (r *trainingMongo) Insert(ctx context.Context, rec entity.TrainingRecord) error {
	_, err := r.col.InsertOne(ctx, trainingDoc(rec))
	return err
}

// FindTop returns the record with the highest training count.
func (r *trainingMongo) FindTop(ctx context.Context) (*entity.TrainingRecord, error) {
	var doc trainingDoc
	err := r.col.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "training_count", Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := entity.TrainingRecord(doc)
	return &rec, nil
}
