package find_available_resources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

type fakeCatalog struct {
	services  map[int64]*domain.Service
	resources map[int64][]domain.Resource
	err       error
}

func (c *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	s, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (c *fakeCatalog) GetResourcesForService(_ context.Context, serviceID int64) ([]domain.Resource, error) {
	return c.resources[serviceID], nil
}

type fakeChecker struct {
	busy       map[int64]bool
	err        error
	gotStart   time.Time
	gotEnd     time.Time
	gotExclude *int64
}

func (c *fakeChecker) BusyResources(_ context.Context, ids []int64, start, end time.Time, exclude *int64) (map[int64]bool, error) {
	c.gotStart, c.gotEnd, c.gotExclude = start, end, exclude
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[int64]bool)
	for _, id := range ids {
		if c.busy[id] {
			out[id] = true
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func venueCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[int64]*domain.Service{
			1: {
				ID:              1,
				Name:            "Bowling",
				DurationMinutes: 60,
				WeekdayPrice:    decimal.NewFromInt(1200),
				WeekendPrice:    decimal.NewFromInt(1800),
				StartTime:       types.MustTimeString("10:00"),
				EndTime:         types.MustTimeString("23:00"),
			},
			9: {ID: 9, Name: "Closed hall", DurationMinutes: 60},
		},
		resources: map[int64][]domain.Resource{
			1: {
				{ID: 1, ServiceID: 1, Name: "Lane 1", Capacity: 6},
				{ID: 2, ServiceID: 1, Name: "Lane 2", Capacity: 6},
				{ID: 3, ServiceID: 1, Name: "Lane 3", Capacity: 4},
			},
		},
	}
}

func TestUseCase_Execute(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		busy         map[int64]bool
		people       int
		wantFree     []int64
		wantMaxCap   int
		wantRequired int
	}{
		{name: "all free, one lane", people: 4, wantFree: []int64{1, 2, 3}, wantMaxCap: 6, wantRequired: 1},
		{name: "two lanes for eight people", people: 8, wantFree: []int64{1, 2, 3}, wantMaxCap: 6, wantRequired: 2},
		{name: "lane 1 busy", busy: map[int64]bool{1: true}, people: 6, wantFree: []int64{2, 3}, wantMaxCap: 6, wantRequired: 1},
		{name: "only small lane free", busy: map[int64]bool{1: true, 2: true}, people: 6, wantFree: []int64{3}, wantMaxCap: 4, wantRequired: 2},
		{name: "nothing free", busy: map[int64]bool{1: true, 2: true, 3: true}, people: 2, wantFree: []int64{}, wantMaxCap: 0, wantRequired: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{busy: tt.busy}
			uc := NewUseCase(venueCatalog(), checker, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Start: start, PeopleCount: tt.people})
			require.NoError(t, err)

			got := make([]int64, 0, len(resp.FreeResources))
			for _, r := range resp.FreeResources {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.wantFree, got)
			assert.Equal(t, tt.wantMaxCap, resp.MaxCapacity)
			assert.Equal(t, tt.wantRequired, resp.RequiredResourceCount)
		})
	}
}

func TestUseCase_DefaultDurationIsServiceDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
	checker := &fakeChecker{}
	uc := NewUseCase(venueCatalog(), checker, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Start: start, PeopleCount: 2})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, start.UTC(), checker.gotStart)
	assert.Equal(t, start.Add(time.Hour).UTC(), checker.gotEnd)
	assert.Nil(t, checker.gotExclude)

	resp, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Start: start, DurationMinutes: 90, PeopleCount: 2})
	require.NoError(t, err)
	assert.Equal(t, start.Add(90*time.Minute).UTC(), resp.End)
}

func TestUseCase_Errors(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	ctx := context.Background()

	uc := NewUseCase(venueCatalog(), &fakeChecker{}, nopLogger{})

	_, err := uc.Execute(ctx, &Request{ServiceID: 1, Start: start, PeopleCount: 0})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = uc.Execute(ctx, &Request{ServiceID: 1, PeopleCount: 2})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ServiceID: 1, Start: start, PeopleCount: domain.MaxPeopleCount + 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ServiceID: 5, Start: start, PeopleCount: 2})
	require.ErrorIs(t, err, ErrServiceNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := uc.Execute(ctx, &Request{ServiceID: 9, Start: start, PeopleCount: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.FreeResources)
	assert.Zero(t, resp.RequiredResourceCount)

	dbErr := errors.New("connection reset")
	uc = NewUseCase(venueCatalog(), &fakeChecker{err: dbErr}, nopLogger{})
	_, err = uc.Execute(ctx, &Request{ServiceID: 1, Start: start, PeopleCount: 2})
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, dbErr)
}
