package service

import (
	"context"
	"testing"
	"time"

	"github.com/murithi/rentledger/internal/config"
	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/tests/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsMocks struct {
	houseRepo   *mocks.MockHouseRepository
	invoiceRepo *mocks.MockInvoiceRepository
	paymentRepo *mocks.MockPaymentRepository
}

func newTestStatsService() (*StatsService, *statsMocks) {
	m := &statsMocks{
		houseRepo:   new(mocks.MockHouseRepository),
		invoiceRepo: new(mocks.MockInvoiceRepository),
		paymentRepo: new(mocks.MockPaymentRepository),
	}

	svc := &StatsService{
		houseRepo:   m.houseRepo,
		invoiceRepo: m.invoiceRepo,
		paymentRepo: m.paymentRepo,
		config:      testConfig(config.StrategySingleMonth, config.OverpaymentCredit),
		now:         func() time.Time { return testNow },
	}

	return svc, m
}

func TestComputeStats(t *testing.T) {
	svc, m := newTestStatsService()

	monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	nextStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	top := []*domain.HouseRevenue{
		{HouseNumber: 7, Received: decimal.NewFromInt(15000)},
		{HouseNumber: 2, Received: decimal.NewFromInt(5000)},
	}
	recent := []*domain.PaymentRecord{{HouseNumber: 7, TenantName: "Wanjiru Kamau", Amount: decimal.NewFromInt(15000)}}

	m.houseRepo.On("ListActive", mock.Anything).
		Return([]*domain.House{testHouse(15000), testHouse(12000), testHouse(10000)}, nil)
	m.invoiceRepo.On("MonthTotals", mock.Anything, 2025, 3).
		Return(decimal.NewFromInt(45000), decimal.NewFromInt(20000), nil)
	m.paymentRepo.On("TopHouses", mock.Anything, monthStart, nextStart, 3).Return(top, nil)
	m.paymentRepo.On("ListRecords", mock.Anything, 10).Return(recent, nil)
	m.paymentRepo.On("ReceivedByMonth", mock.Anything, mock.Anything).
		Return([]*domain.MonthTotal{}, nil)

	stats, err := svc.ComputeStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Units)
	assert.True(t, stats.Expected.Equal(decimal.NewFromInt(45000)))
	assert.True(t, stats.Received.Equal(decimal.NewFromInt(20000)))
	assert.True(t, stats.Outstanding.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, top, stats.TopHouses)
	assert.Equal(t, recent, stats.RecentPayments)

	m.paymentRepo.AssertExpectations(t)
}

func TestComputeStatsOutstandingClampedAtZero(t *testing.T) {
	svc, m := newTestStatsService()

	m.houseRepo.On("ListActive", mock.Anything).Return([]*domain.House{}, nil)
	// credit payments can push received past expected
	m.invoiceRepo.On("MonthTotals", mock.Anything, 2025, 3).
		Return(decimal.NewFromInt(30000), decimal.NewFromInt(35000), nil)
	m.paymentRepo.On("TopHouses", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.HouseRevenue{}, nil)
	m.paymentRepo.On("ListRecords", mock.Anything, mock.Anything).
		Return([]*domain.PaymentRecord{}, nil)
	m.paymentRepo.On("ReceivedByMonth", mock.Anything, mock.Anything).
		Return([]*domain.MonthTotal{}, nil)

	stats, err := svc.ComputeStats(context.Background())

	require.NoError(t, err)
	assert.True(t, stats.Outstanding.IsZero())
}

func TestComputeStatsTrendZeroFills(t *testing.T) {
	svc, m := newTestStatsService()

	trendFrom := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	m.houseRepo.On("ListActive", mock.Anything).Return([]*domain.House{}, nil)
	m.invoiceRepo.On("MonthTotals", mock.Anything, 2025, 3).
		Return(decimal.Zero, decimal.Zero, nil)
	m.paymentRepo.On("TopHouses", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.HouseRevenue{}, nil)
	m.paymentRepo.On("ListRecords", mock.Anything, mock.Anything).
		Return([]*domain.PaymentRecord{}, nil)
	// only two of the six window months saw payments
	m.paymentRepo.On("ReceivedByMonth", mock.Anything, trendFrom).
		Return([]*domain.MonthTotal{
			{Year: 2024, Month: 12, Received: decimal.NewFromInt(30000)},
			{Year: 2025, Month: 2, Received: decimal.NewFromInt(15000)},
		}, nil)

	stats, err := svc.ComputeStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats.Trend, 6)

	wantMonths := [][2]int{{2024, 10}, {2024, 11}, {2024, 12}, {2025, 1}, {2025, 2}, {2025, 3}}
	for i, want := range wantMonths {
		assert.Equal(t, want[0], stats.Trend[i].Year)
		assert.Equal(t, want[1], stats.Trend[i].Month)
	}

	assert.True(t, stats.Trend[0].Received.IsZero())
	assert.True(t, stats.Trend[2].Received.Equal(decimal.NewFromInt(30000)))
	assert.True(t, stats.Trend[4].Received.Equal(decimal.NewFromInt(15000)))
	assert.True(t, stats.Trend[5].Received.IsZero())
}
