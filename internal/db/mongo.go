package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/utils"
)

type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func NewMongoService(log *logger.Logger) (*MongoService, error) {
	serviceLog := log.With("service", "MongoService")

	log.Info("Loading environment variables...")
	mongoURI := utils.GetEnv("MONGODB_URI", "mongodb://localhost:27017", log)
	mongoName := utils.GetEnv("MONGODB_NAME", "sheetsync", log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(5*time.Second).
		SetConnectTimeout(10*time.Second))
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("Failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Error("Failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("Failed to ping MongoDB: %w", err)
	}
	serviceLog.Info("MongoDB connection established", "database", mongoName)

	return &MongoService{
		client: client,
		db:     client.Database(mongoName),
		log:    serviceLog,
	}, nil
}

func (s *MongoService) DB() *mongo.Database {
	return s.db
}

// EnsureIndexes creates the lookup indexes both collections rely on.
func (s *MongoService) EnsureIndexes(ctx context.Context) error {
	s.log.Info("Ensuring MongoDB indexes...")
	keywordIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sheetType", Value: 1}}},
		{Keys: bson.D{{Key: "company", Value: 1}, {Key: "keyword", Value: 1}}},
	}
	if _, err := s.db.Collection("keywords").Indexes().CreateMany(ctx, keywordIndexes); err != nil {
		return fmt.Errorf("create keyword indexes: %w", err)
	}
	rootIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company", Value: 1}, {Key: "keyword", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	}
	if _, err := s.db.Collection("root_keywords").Indexes().CreateMany(ctx, rootIndexes); err != nil {
		return fmt.Errorf("create root keyword indexes: %w", err)
	}
	return nil
}

func (s *MongoService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
