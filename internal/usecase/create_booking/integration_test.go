//go:build integration

package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/testutil/pgcontainer"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

// Сид миграций: услуга 1 (Боулинг, 10:00-23:00), дорожка 1
const (
	seedBowlingID = 1
	seedLaneID    = 1
)

func TestIntegration_ConcurrentBookingsOnSameLane(t *testing.T) {
	db := pgcontainer.Start(t)

	orders := orderRepo.NewRepository(db)
	checker := availability.NewChecker(orders)
	selector := findResources.NewUseCase(catalogRepo.NewRepository(db), checker, nopLogger{})
	txMgr := txmanager.NewTransactionManager(&dbmetrics.SqlDBWrapper{DB: db}, txmanager.WithMaxRetries(10))

	loc := time.FixedZone("MSK", 3*60*60)
	metrics := &fakeMetrics{}
	uc := NewUseCase(orders, selector, pricing.NewEngine(nil, loc), fakeUserClient{discount: decimal.Zero},
		txMgr, &fakePublisher{}, metrics, nopLogger{})

	// Ближайший понедельник через неделю, 14:00 по времени площадки
	start := time.Now().In(loc).AddDate(0, 0, 7)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 14, 0, 0, 0, loc)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				UserID:      int64(100 + i),
				ServiceID:   seedBowlingID,
				Start:       start,
				PeopleCount: 2,
				ResourceIDs: []int64{seedLaneID},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		// Проигравшие либо видят занятость, либо исчерпывают повторы сериализации
		assert.True(t,
			errors.Is(err, domain.ErrResourceUnavailable) || errors.Is(err, domain.ErrPersistence),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var active int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM order_resources WHERE resource_id = $1 AND active AND occupied && tstzrange($2, $3, '[)')`,
		seedLaneID, start.UTC(), start.Add(time.Hour).UTC(),
	).Scan(&active)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}
