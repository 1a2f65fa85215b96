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

type KeywordRepo interface {
	GetAll(ctx context.Context) ([]types.Keyword, error)
	GetAllByUpdatedAt(ctx context.Context) ([]types.Keyword, error)
	GetByPartition(ctx context.Context, partition types.Partition) ([]types.Keyword, error)
	GetByCompany(ctx context.Context, company string) ([]types.Keyword, error)
	GetByCompanies(ctx context.Context, companies []string) ([]types.Keyword, error)
	ReplacePartition(ctx context.Context, partition types.Partition, records []types.Keyword) (deleted, inserted int64, err error)
	UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.Keyword, error)
	Stats(ctx context.Context) (types.VisibilityStats, error)
}

type keywordRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewKeywordRepo(db *mongo.Database, baseLog *logger.Logger) KeywordRepo {
	return &keywordRepo{
		coll: db.Collection("keywords"),
		log:  baseLog.With("repo", "KeywordRepo"),
	}
}

func (r *keywordRepo) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]types.Keyword, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var results []types.Keyword
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *keywordRepo) GetAll(ctx context.Context) ([]types.Keyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "company", Value: 1}, {Key: "keyword", Value: 1}})
	return r.find(ctx, bson.D{}, sort)
}

// GetAllByUpdatedAt returns records in ingestion/update order. Sequential
// reconciliation depends on this ordering being stable.
func (r *keywordRepo) GetAllByUpdatedAt(ctx context.Context) ([]types.Keyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.D{}, sort)
}

func (r *keywordRepo) GetByPartition(ctx context.Context, partition types.Partition) ([]types.Keyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.D{{Key: "sheetType", Value: partition}}, sort)
}

func (r *keywordRepo) GetByCompany(ctx context.Context, company string) ([]types.Keyword, error) {
	sort := options.Find().SetSort(bson.D{{Key: "keyword", Value: 1}})
	return r.find(ctx, bson.D{{Key: "company", Value: company}}, sort)
}

func (r *keywordRepo) GetByCompanies(ctx context.Context, companies []string) ([]types.Keyword, error) {
	if len(companies) == 0 {
		return []types.Keyword{}, nil
	}
	sort := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "_id", Value: 1}})
	filter := bson.D{{Key: "company", Value: bson.D{{Key: "$in", Value: companies}}}}
	return r.find(ctx, filter, sort)
}

// ReplacePartition is the delete-then-insert partition replace. It is not
// transactional across the two writes; the sheet remains the durable source
// of truth and a failed replace is simply re-run.
func (r *keywordRepo) ReplacePartition(ctx context.Context, partition types.Partition, records []types.Keyword) (int64, int64, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	deleteResult, err := r.coll.DeleteMany(ctx, bson.D{{Key: "sheetType", Value: partition}})
	if err != nil {
		return 0, 0, fmt.Errorf("delete partition %s: %w", partition, err)
	}
	r.log.Info("Partition cleared", "partition", partition, "deleted", deleteResult.DeletedCount)

	now := time.Now()
	docs := make([]interface{}, len(records))
	for i, kw := range records {
		kw.SheetType = partition
		kw.LastChecked = now
		kw.CreatedAt = now
		kw.UpdatedAt = now
		docs[i] = kw
	}
	insertResult, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return deleteResult.DeletedCount, 0, fmt.Errorf("insert partition %s: %w", partition, err)
	}
	r.log.Info("Partition replaced", "partition", partition, "inserted", len(insertResult.InsertedIDs))
	return deleteResult.DeletedCount, int64(len(insertResult.InsertedIDs)), nil
}

func (r *keywordRepo) UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.Keyword, error) {
	filter := bson.D{{Key: "company", Value: company}, {Key: "keyword", Value: keyword}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "visibility", Value: visibility},
		{Key: "lastChecked", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result types.Keyword
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *keywordRepo) Stats(ctx context.Context) (types.VisibilityStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return types.VisibilityStats{}, err
	}
	visible, err := r.coll.CountDocuments(ctx, bson.D{{Key: "visibility", Value: true}})
	if err != nil {
		return types.VisibilityStats{}, err
	}
	return types.VisibilityStats{
		Total:   total,
		Visible: visible,
		Hidden:  total - visible,
	}, nil
}
