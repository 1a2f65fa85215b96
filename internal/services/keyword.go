package services

import (
	"context"
	"fmt"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/types"
)

// KeywordService backs the dashboard table: listing, per-company filtering
// and single-record visibility edits.
type KeywordService interface {
	List(ctx context.Context) ([]types.Keyword, error)
	ListByCompany(ctx context.Context, company string) ([]types.Keyword, error)
	Replace(ctx context.Context, records []types.Keyword) (ReplaceResult, error)
	UpdateVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.Keyword, error)
	ListRoot(ctx context.Context) ([]types.RootKeyword, error)
}

type keywordService struct {
	log         *logger.Logger
	keywordRepo repos.KeywordRepo
	rootRepo    repos.RootKeywordRepo
	stats       StatsService
}

func NewKeywordService(log *logger.Logger, keywordRepo repos.KeywordRepo, rootRepo repos.RootKeywordRepo, stats StatsService) KeywordService {
	return &keywordService{
		log:         log.With("service", "KeywordService"),
		keywordRepo: keywordRepo,
		rootRepo:    rootRepo,
		stats:       stats,
	}
}

func (s *keywordService) List(ctx context.Context) ([]types.Keyword, error) {
	return s.keywordRepo.GetAll(ctx)
}

func (s *keywordService) ListByCompany(ctx context.Context, company string) ([]types.Keyword, error) {
	return s.keywordRepo.GetByCompany(ctx, company)
}

// Replace replaces the partition of the first record with the given set;
// the dashboard posts a whole edited table back at once.
func (s *keywordService) Replace(ctx context.Context, records []types.Keyword) (ReplaceResult, error) {
	if len(records) == 0 {
		return ReplaceResult{}, nil
	}
	partition, err := types.ParsePartition(string(records[0].SheetType))
	if err != nil {
		return ReplaceResult{}, fmt.Errorf("replace keywords: %w", err)
	}
	deleted, inserted, err := s.keywordRepo.ReplacePartition(ctx, partition, records)
	if err != nil {
		return ReplaceResult{}, err
	}
	s.stats.Invalidate(ctx)
	return ReplaceResult{Deleted: deleted, Inserted: inserted}, nil
}

func (s *keywordService) UpdateVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.Keyword, error) {
	updated, err := s.keywordRepo.UpsertVisibility(ctx, company, keyword, visibility)
	if err != nil {
		return nil, err
	}
	s.stats.Invalidate(ctx)
	return updated, nil
}

func (s *keywordService) ListRoot(ctx context.Context) ([]types.RootKeyword, error) {
	return s.rootRepo.GetAllByUpdatedAt(ctx)
}
