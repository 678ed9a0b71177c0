package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearly/supportbot/internal/intent"
)

// TrainingRun is one persisted training report, written after each
// successful trainer run so accuracy drift is visible over time.
type TrainingRun struct {
	RunID          string                          `bson:"run_id" json:"run_id"`
	Accuracy       float64                         `bson:"accuracy" json:"accuracy"`
	PerClass       map[string]intent.ClassMetrics  `bson:"per_class" json:"per_class"`
	TrainSize      int                             `bson:"train_size" json:"train_size"`
	TestSize       int                             `bson:"test_size" json:"test_size"`
	VocabularySize int                             `bson:"vocabulary_size" json:"vocabulary_size"`
	ArtifactPath   string                          `bson:"artifact_path" json:"artifact_path"`
	CreatedAt      time.Time                       `bson:"created_at" json:"created_at"`
}

type TrainingRunRepo interface {
	Insert(ctx context.Context, run *TrainingRun) error
	ListRecent(ctx context.Context, limit int) ([]TrainingRun, error)
}

type trainingRunRepo struct {
	col *mongo.Collection
}

func NewTrainingRunRepo(client *mongo.Client, dbName string) (TrainingRunRepo, error) {
	col := client.Database(dbName).Collection("training_runs")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	return &trainingRunRepo{col: col}, nil
}

func (r *trainingRunRepo) Insert(ctx context.Context, run *TrainingRun) error {
	_, err := r.col.InsertOne(ctx, run)
	return err
}

func (r *trainingRunRepo) ListRecent(ctx context.Context, limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []TrainingRun
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
