package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Услуга 1 длительностью 60 минут с дорожками 1 и 2 (совпадает с сидом миграций)
const (
	bowlingID = 1
	lane1     = 1
	lane2     = 2
)

// occupancyStore операции занятости, общие для PostgreSQL и хранилища в памяти
type occupancyStore interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	AddResources(ctx context.Context, orderID, serviceID int64, start, end time.Time, resourceIDs []int64) error
	GetBusyIntervals(ctx context.Context, q order.BusyQuery) ([]domain.BusyInterval, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

func bookLane(t *testing.T, store occupancyStore, start time.Time, laneID int64) (int64, error) {
	t.Helper()
	ctx := context.Background()

	o, err := store.Create(ctx, &domain.Order{
		UserID:      1,
		ServiceID:   bowlingID,
		OrderDate:   start,
		TotalPrice:  decimal.NewFromInt(1200),
		PeopleCount: 2,
		Status:      domain.StatusCreated,
	})
	require.NoError(t, err)

	return o.ID, store.AddResources(ctx, o.ID, bowlingID, start, start.Add(time.Hour), []int64{laneID})
}

func busyOrderIDs(t *testing.T, store occupancyStore, from, to time.Time, exclude *int64, laneIDs ...int64) []int64 {
	t.Helper()
	intervals, err := store.GetBusyIntervals(context.Background(), order.BusyQuery{
		ResourceIDs:    laneIDs,
		From:           from,
		To:             to,
		ExcludeOrderID: exclude,
	})
	require.NoError(t, err)

	ids := make([]int64, 0, len(intervals))
	for _, in := range intervals {
		ids = append(ids, in.OrderID)
	}
	return ids
}

// runOccupancyChecks проверяет границы занятости, ограничение исключения
// и повторную активацию после отмены
func runOccupancyChecks(t *testing.T, store occupancyStore) {
	ctx := context.Background()
	at := func(h, m int) time.Time { return time.Date(2030, 3, 11, h, m, 0, 0, time.UTC) }

	first, err := bookLane(t, store, at(14, 0), lane1)
	require.NoError(t, err)

	t.Run("window boundaries", func(t *testing.T) {
		tests := []struct {
			name string
			from time.Time
			to   time.Time
			want []int64
		}{
			{name: "ends where order starts", from: at(13, 0), to: at(14, 0), want: []int64{}},
			{name: "starts where order ends", from: at(15, 0), to: at(16, 0), want: []int64{}},
			{name: "partial overlap", from: at(14, 30), to: at(15, 30), want: []int64{first}},
			{name: "window covers order", from: at(13, 0), to: at(16, 0), want: []int64{first}},
			{name: "window inside order", from: at(14, 10), to: at(14, 20), want: []int64{first}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.ElementsMatch(t, tt.want, busyOrderIDs(t, store, tt.from, tt.to, nil, lane1))
			})
		}

		assert.Empty(t, busyOrderIDs(t, store, at(14, 0), at(15, 0), nil, lane2))
		assert.Empty(t, busyOrderIDs(t, store, at(14, 0), at(15, 0), &first, lane1))
	})

	t.Run("interval bounds", func(t *testing.T) {
		intervals, err := store.GetBusyIntervals(ctx, order.BusyQuery{ResourceIDs: []int64{lane1}, From: at(14, 0), To: at(15, 0)})
		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, int64(lane1), intervals[0].ResourceID)
		assert.True(t, intervals[0].Start.Equal(at(14, 0)), "start %s", intervals[0].Start)
		assert.True(t, intervals[0].End.Equal(at(15, 0)), "end %s", intervals[0].End)
	})

	t.Run("abutting bookings are allowed, overlapping rejected", func(t *testing.T) {
		_, err := bookLane(t, store, at(15, 0), lane1)
		require.NoError(t, err)

		_, err = bookLane(t, store, at(14, 30), lane1)
		require.ErrorIs(t, err, order.ErrResourceBusy)

		_, err = bookLane(t, store, at(14, 30), lane2)
		require.NoError(t, err)
	})

	t.Run("cancelled order frees the lane until reactivated", func(t *testing.T) {
		require.NoError(t, store.UpdateStatus(ctx, first, domain.StatusCancelled))
		assert.Empty(t, busyOrderIDs(t, store, at(14, 0), at(15, 0), nil, lane1))

		_, err := bookLane(t, store, at(14, 0), lane1)
		require.NoError(t, err)

		err = store.UpdateStatus(ctx, first, domain.StatusConfirmed)
		require.ErrorIs(t, err, order.ErrResourceBusy)
	})
}

func TestMemstore_Occupancy(t *testing.T) {
	store := memstore.New()
	store.AddService(domain.Service{
		ID:              bowlingID,
		Name:            "Боулинг",
		DurationMinutes: 60,
		WeekdayPrice:    decimal.NewFromInt(1200),
		WeekendPrice:    decimal.NewFromInt(1800),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("23:00"),
	},
		domain.Resource{ID: lane1, ServiceID: bowlingID, Name: "Дорожка 1", Capacity: 6},
		domain.Resource{ID: lane2, ServiceID: bowlingID, Name: "Дорожка 2", Capacity: 6},
	)

	runOccupancyChecks(t, store)
}
