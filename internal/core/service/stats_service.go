package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

const (
	statsCacheTTL = time.Minute

	totalRevenueKey   = "stats:revenue:total"
	monthlyRevenueKey = "stats:revenue:monthly"
	topSellingKeyFmt  = "stats:products:top:%d"
)

// StatsService serves revenue reports with a Redis cache in front of the
// aggregation queries. Cache failures are logged and degrade to direct reads.
type StatsService struct {
	stats port.StatsRepository
	cache port.CacheRepository
}

func NewStatsService(stats port.StatsRepository, cache port.CacheRepository) *StatsService {
	return &StatsService{stats: stats, cache: cache}
}

func (s *StatsService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var cached decimal.Decimal
	if s.cacheGet(ctx, totalRevenueKey, &cached) {
		return cached, nil
	}

	total, err := s.stats.TotalRevenue(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	s.cacheSet(ctx, totalRevenueKey, total)
	return total, nil
}

func (s *StatsService) MonthlyRevenue(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	var cached []domain.MonthlyRevenue
	if s.cacheGet(ctx, monthlyRevenueKey, &cached) {
		return cached, nil
	}

	buckets, err := s.stats.MonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, monthlyRevenueKey, buckets)
	return buckets, nil
}

// TopSellingProducts defaults to the top 5 when limit is not positive.
func (s *StatsService) TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	key := fmt.Sprintf(topSellingKeyFmt, limit)
	var cached []domain.TopProduct
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.stats.TopSellingProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, products)
	return products, nil
}

func (s *StatsService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		log.Printf("stats cache read failed for %s: %v", key, err)
		return false
	}
	return ok
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, statsCacheTTL); err != nil {
		log.Printf("stats cache write failed for %s: %v", key, err)
	}
}
