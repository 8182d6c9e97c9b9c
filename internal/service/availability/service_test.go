package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
)

type fakeOrderRepo struct {
	intervals []domain.BusyInterval
	err       error
	lastQuery orderRepo.BusyQuery
}

// GetBusyIntervals имитирует фильтры SQL: ресурс и исключённый заказ
func (f *fakeOrderRepo) GetBusyIntervals(_ context.Context, q orderRepo.BusyQuery) ([]domain.BusyInterval, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[int64]bool, len(q.ResourceIDs))
	for _, id := range q.ResourceIDs {
		wanted[id] = true
	}
	out := make([]domain.BusyInterval, 0)
	for _, in := range f.intervals {
		if !wanted[in.ResourceID] {
			continue
		}
		if q.ExcludeOrderID != nil && in.OrderID == *q.ExcludeOrderID {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func TestChecker_IsResourceBusy(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	repo := &fakeOrderRepo{intervals: []domain.BusyInterval{
		{OrderID: 10, ResourceID: 1, Start: at(14, 0), End: at(15, 0)},
	}}
	checker := NewChecker(repo)
	ctx := context.Background()
	orderID := int64(10)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude *int64
		want    bool
	}{
		{name: "overlapping half hour later", start: at(14, 30), end: at(15, 30), want: true},
		{name: "same window", start: at(14, 0), end: at(15, 0), want: true},
		{name: "abuts end", start: at(15, 0), end: at(16, 0), want: false},
		{name: "abuts start", start: at(13, 0), end: at(14, 0), want: false},
		{name: "excluded order", start: at(14, 0), end: at(15, 0), exclude: &orderID, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busy, err := checker.IsResourceBusy(ctx, 1, tt.start, tt.end, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, busy)
		})
	}
}

func TestChecker_BusyResources(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{intervals: []domain.BusyInterval{
		{OrderID: 1, ResourceID: 1, Start: start, End: start.Add(time.Hour)},
		{OrderID: 2, ResourceID: 2, Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
	}}

	busy, err := NewChecker(repo).BusyResources(context.Background(), []int64{1, 2, 3}, start, start.Add(time.Hour), nil)
	require.NoError(t, err)

	assert.Equal(t, map[int64]bool{1: true}, busy)
	assert.Equal(t, []int64{1, 2, 3}, repo.lastQuery.ResourceIDs)
}

func TestChecker_InvalidWindow(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	_, err := NewChecker(&fakeOrderRepo{}).IsResourceBusy(context.Background(), 1, start, start, nil)
	require.ErrorIs(t, err, ErrInvalidWindow)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChecker_RepositoryError(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	repoErr := errors.New("connection reset")

	_, err := NewChecker(&fakeOrderRepo{err: repoErr}).IsResourceBusy(context.Background(), 1, start, start.Add(time.Hour), nil)
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, repoErr)
}
