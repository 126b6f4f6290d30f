package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/enquiry-service/internal/domain"
	"github.com/spec-kit/enquiry-service/internal/repository"
	apperrors "github.com/spec-kit/enquiry-service/pkg/util"
)

const (
	statsCacheKey = "enquiries:stats"
	statsCacheTTL = 30 * time.Second
)

// Stats is the dashboard aggregation payload. Day buckets with zero
// enquiries are omitted rather than zero-filled.
type Stats struct {
	Total      int                        `json:"total"`
	New        int                        `json:"new"`
	InProgress int                        `json:"inProgress"`
	Closed     int                        `json:"closed"`
	Recent     []repository.RecentEnquiry `json:"recent"`
	Last7Days  []repository.DayCount      `json:"last7days"`
}

// StatsService aggregates enquiry counts for the dashboard, caching the
// payload briefly in Redis.
type StatsService struct {
	enquiries repository.EnquiryRepository
	cache     *redis.Client
	logger    *zap.Logger
}

// NewStatsService constructs the service. A nil cache client disables caching.
func NewStatsService(enquiries repository.EnquiryRepository, cache *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{enquiries: enquiries, cache: cache, logger: logger}
}

// Stats computes totals, per-status counts, the five most recent enquiries
// and the trailing seven-day creation histogram.
func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	total, err := s.enquiries.CountByStatus(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	counts := make(map[domain.EnquiryStatus]int, 3)
	for _, status := range []domain.EnquiryStatus{
		domain.EnquiryStatusNew,
		domain.EnquiryStatusInProgress,
		domain.EnquiryStatusClosed,
	} {
		st := status
		count, err := s.enquiries.CountByStatus(ctx, &st)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		counts[status] = count
	}

	recent, err := s.enquiries.ListRecent(ctx, 5)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if recent == nil {
		recent = []repository.RecentEnquiry{}
	}

	buckets, err := s.enquiries.CountByDaySince(ctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if buckets == nil {
		buckets = []repository.DayCount{}
	}

	stats := &Stats{
		Total:      total,
		New:        counts[domain.EnquiryStatusNew],
		InProgress: counts[domain.EnquiryStatusInProgress],
		Closed:     counts[domain.EnquiryStatusClosed],
		Recent:     recent,
		Last7Days:  buckets,
	}
	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
