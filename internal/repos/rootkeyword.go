package repos

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/types"
)

type RootKeywordRepo interface {
	GetAllByUpdatedAt(ctx context.Context) ([]types.RootKeyword, error)
	GetByCompany(ctx context.Context, company string) ([]types.RootKeyword, error)
	ReplaceAll(ctx context.Context, records []types.RootKeyword) (deleted, inserted int64, err error)
	UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.RootKeyword, error)
}

type rootKeywordRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewRootKeywordRepo(db *mongo.Database, baseLog *logger.Logger) RootKeywordRepo {
	return &rootKeywordRepo{
		coll: db.Collection("root_keywords"),
		log:  baseLog.With("repo", "RootKeywordRepo"),
	}
}

func (r *rootKeywordRepo) GetAllByUpdatedAt(ctx context.Context) ([]types.RootKeyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, sort)
	if err != nil {
		return nil, err
	}
	var results []types.RootKeyword
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *rootKeywordRepo) GetByCompany(ctx context.Context, company string) ([]types.RootKeyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "keyword", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "company", Value: company}}, sort)
	if err != nil {
		return nil, err
	}
	var results []types.RootKeyword
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceAll rewrites the whole collection; the root sheet has no partition
// key.
func (r *rootKeywordRepo) ReplaceAll(ctx context.Context, records []types.RootKeyword) (int64, int64, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	deleteResult, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, 0, fmt.Errorf("delete root keywords: %w", err)
	}
	r.log.Info("Root keywords cleared", "deleted", deleteResult.DeletedCount)

	now := time.Now()
	docs := make([]interface{}, len(records))
	for i, kw := range records {
		kw.LastChecked = now
		kw.CreatedAt = now
		kw.UpdatedAt = now
		docs[i] = kw
	}
	insertResult, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return deleteResult.DeletedCount, 0, fmt.Errorf("insert root keywords: %w", err)
	}
	r.log.Info("Root keywords replaced", "inserted", len(insertResult.InsertedIDs))
	return deleteResult.DeletedCount, int64(len(insertResult.InsertedIDs)), nil
}

func (r *rootKeywordRepo) UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.RootKeyword, error) {
	filter := bson.D{{Key: "company", Value: company}, {Key: "keyword", Value: keyword}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "visibility", Value: visibility},
		{Key: "lastChecked", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result types.RootKeyword
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
