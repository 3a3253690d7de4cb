package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/murithi/rentledger/internal/config"
	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/repository"
	customError "github.com/murithi/rentledger/pkg/errors"
	"github.com/murithi/rentledger/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// StatsService derives the dashboard aggregate from the invoice table and
// the append-only payment log. Nothing here maintains counters: every number
// is recomputed from source data, with a short-lived Redis cache in front.
type StatsService struct {
	houseRepo   repository.HouseRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	redis       *redis.Client
	config      *config.Config
	now         func() time.Time
}

func NewStatsService(
	houseRepo repository.HouseRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	redis *redis.Client,
	config *config.Config,
) *StatsService {
	return &StatsService{
		houseRepo:   houseRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		redis:       redis,
		config:      config,
		now:         time.Now,
	}
}

// ComputeStats returns the dashboard aggregate for the current month.
// Outstanding is clamped at zero in this aggregate only; per-invoice
// balances keep their sign.
func (s *StatsService) ComputeStats(ctx context.Context) (*domain.StatsResponse, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	now := s.now()
	year, month := now.Year(), int(now.Month())
	monthStart, _ := utils.MonthBounds(year, month)
	nextYear, nextMonth := utils.NextMonth(year, month)
	nextStart, _ := utils.MonthBounds(nextYear, nextMonth)

	stats := &domain.StatsResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		houses, err := s.houseRepo.ListActive(gctx)
		if err != nil {
			return err
		}
		stats.Units = len(houses)
		return nil
	})

	g.Go(func() error {
		expected, received, err := s.invoiceRepo.MonthTotals(gctx, year, month)
		if err != nil {
			return err
		}
		stats.Expected = expected
		stats.Received = received
		return nil
	})

	g.Go(func() error {
		top, err := s.paymentRepo.TopHouses(gctx, monthStart, nextStart, s.config.Business.TopHousesLimit)
		if err != nil {
			return err
		}
		stats.TopHouses = top
		return nil
	})

	g.Go(func() error {
		recent, err := s.paymentRepo.ListRecords(gctx, s.config.Business.RecentPaymentsLimit)
		if err != nil {
			return err
		}
		stats.RecentPayments = recent
		return nil
	})

	g.Go(func() error {
		trend, err := s.computeTrend(gctx, year, month)
		if err != nil {
			return err
		}
		stats.Trend = trend
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	stats.Outstanding = stats.Expected.Sub(stats.Received)
	if stats.Outstanding.IsNegative() {
		stats.Outstanding = decimal.Zero
	}

	if stats.TopHouses == nil {
		stats.TopHouses = []*domain.HouseRevenue{}
	}
	if stats.RecentPayments == nil {
		stats.RecentPayments = []*domain.PaymentRecord{}
	}

	s.writeCache(ctx, stats)

	return stats, nil
}

// computeTrend returns received totals for the configured trailing window,
// oldest to newest, with zero entries for months that saw no payments.
func (s *StatsService) computeTrend(ctx context.Context, year, month int) ([]*domain.MonthTotal, error) {
	months := s.config.Business.TrendMonths
	fromYear, fromMonth := utils.MonthsBack(year, month, months-1)
	from, _ := utils.MonthBounds(fromYear, fromMonth)

	totals, err := s.paymentRepo.ReceivedByMonth(ctx, from)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[[2]int]decimal.Decimal, len(totals))
	for _, total := range totals {
		byMonth[[2]int{total.Year, total.Month}] = total.Received
	}

	trend := make([]*domain.MonthTotal, 0, months)
	y, m := fromYear, fromMonth
	for i := 0; i < months; i++ {
		received, ok := byMonth[[2]int{y, m}]
		if !ok {
			received = decimal.Zero
		}
		trend = append(trend, &domain.MonthTotal{Year: y, Month: m, Received: received})
		y, m = utils.NextMonth(y, m)
	}

	return trend, nil
}

func (s *StatsService) readCache(ctx context.Context) *domain.StatsResponse {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, statsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read stats cache: %v", err)
		}
		return nil
	}

	var stats domain.StatsResponse
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("Failed to decode cached stats: %v", err)
		return nil
	}

	return &stats
}

func (s *StatsService) writeCache(ctx context.Context, stats *domain.StatsResponse) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		log.Printf("Failed to encode stats for cache: %v", err)
		return
	}

	if err := s.redis.Set(ctx, statsCacheKey, raw, s.config.GetStatsCacheTTL()).Err(); err != nil {
		log.Printf("Failed to write stats cache: %v", err)
	}
}
