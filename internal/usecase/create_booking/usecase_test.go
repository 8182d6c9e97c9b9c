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
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/testutil/memstore"
	findResources "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeUserClient struct{ discount decimal.Decimal }

func (c fakeUserClient) GetDiscountPercent(context.Context, int64) decimal.Decimal {
	return c.discount
}

type fakePublisher struct {
	mu     sync.Mutex
	events []eventbus.OrderEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event eventbus.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
	failed    int
}

func (m *fakeMetrics) IncBookingCreated(int64) {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *fakeMetrics) IncBookingConflict(string) {
	m.mu.Lock()
	m.conflicts++
	m.mu.Unlock()
}

func (m *fakeMetrics) IncEventFailed(string) {
	m.mu.Lock()
	m.failed++
	m.mu.Unlock()
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type env struct {
	store     *memstore.Store
	publisher *fakePublisher
	metrics   *fakeMetrics
	uc        *UseCase
}

// newEnv собирает use case на хранилище в памяти с услугой Bowling и одной дорожкой
func newEnv(t *testing.T, discount decimal.Decimal) *env {
	t.Helper()

	store := memstore.New()
	store.AddService(domain.Service{
		ID:              1,
		Name:            "Bowling",
		DurationMinutes: 60,
		WeekdayPrice:    decimal.NewFromInt(1000),
		WeekendPrice:    decimal.NewFromInt(1500),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("22:00"),
	}, domain.Resource{ID: 1, ServiceID: 1, Name: "Lane 1", Capacity: 6})

	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	selector := findResources.NewUseCase(store, availability.NewChecker(store), nopLogger{})

	uc := NewUseCase(
		store,
		selector,
		pricing.NewEngine(nil, msk),
		fakeUserClient{discount: discount},
		store,
		publisher,
		metrics,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: time.Date(2025, 3, 9, 12, 0, 0, 0, msk)}

	return &env{store: store, publisher: publisher, metrics: metrics, uc: uc}
}

// monday 10.03.2025 в часовом поясе площадки
func monday(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, msk)
}

func TestUseCase_Execute_BowlingScenario(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, decimal.Zero)

	// A: 14:00, 4 гостя, Lane 1
	a, err := e.uc.Execute(ctx, &Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 4, ResourceIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", a.Order.TotalPrice.StringFixed(2))
	assert.Equal(t, domain.StatusCreated, a.Order.Status)
	assert.Equal(t, []int64{1}, a.Order.ResourceIDs())
	assert.Equal(t, monday(15, 0).UTC(), a.Order.EndsAt())
	assert.False(t, a.Quote.Weekend)

	// B: 14:30 пересекается с A
	_, err = e.uc.Execute(ctx, &Request{UserID: 11, ServiceID: 1, Start: monday(14, 30), PeopleCount: 2, ResourceIDs: []int64{1}})
	require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	assert.Equal(t, []int64{1}, domain.UnavailableResourceIDs(err))

	// C: 15:00 начинается ровно в конце A
	c, err := e.uc.Execute(ctx, &Request{UserID: 12, ServiceID: 1, Start: monday(15, 0), PeopleCount: 6, ResourceIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", c.Order.TotalPrice.StringFixed(2))

	assert.Len(t, e.store.Orders(), 2)
	assert.Equal(t, 2, e.metrics.created)
	assert.Equal(t, 1, e.metrics.conflicts)

	require.Len(t, e.publisher.events, 2)
	assert.Equal(t, eventbus.OrderCreated, e.publisher.events[0].Type)
	assert.Equal(t, a.Order.ID, e.publisher.events[0].OrderID)
	assert.Equal(t, "1000.00", e.publisher.events[0].TotalPrice)
}

func TestUseCase_Execute_WeekendExtrasAndDiscount(t *testing.T) {
	e := newEnv(t, decimal.NewFromInt(10))
	saturday := time.Date(2025, 3, 15, 11, 0, 0, 0, msk)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:      10,
		ServiceID:   1,
		Start:       saturday,
		PeopleCount: 3,
		ResourceIDs: []int64{1},
		Extras:      []string{"Instructor", "food", "instructor"},
	})
	require.NoError(t, err)

	// (1500 + 500 + 1000) * 0.9
	assert.True(t, resp.Quote.Weekend)
	assert.Equal(t, "2700.00", resp.Order.TotalPrice.StringFixed(2))
	assert.Equal(t, []string{"food", "instructor"}, resp.Order.Extras)
	assert.Equal(t, "10", resp.Order.DiscountPercent.String())
}

func TestUseCase_Execute_ExplicitDuration(t *testing.T) {
	e := newEnv(t, decimal.Zero)

	_, err := e.uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Start: monday(12, 0), DurationMinutes: 60, PeopleCount: 2, ResourceIDs: []int64{1},
	})
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{
		UserID: 10, ServiceID: 1, Start: monday(16, 0), DurationMinutes: 90, PeopleCount: 2, ResourceIDs: []int64{1},
	})
	require.ErrorIs(t, err, ErrInvalidDuration)
	assert.Len(t, e.store.Orders(), 1)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "zero people",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 0, ResourceIDs: []int64{1}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no resources",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 2},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate resources",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{1, 1}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown extra",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{1}, Extras: []string{"sauna"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "start in the past",
			req:     Request{UserID: 10, ServiceID: 1, Start: time.Date(2025, 3, 9, 11, 0, 0, 0, msk), PeopleCount: 2, ResourceIDs: []int64{1}},
			wantErr: ErrStartInPast,
		},
		{
			name:    "before opening",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(9, 30), PeopleCount: 2, ResourceIDs: []int64{1}},
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name:    "past closing",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(21, 30), PeopleCount: 2, ResourceIDs: []int64{1}},
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name:    "too many people for one lane",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 7, ResourceIDs: []int64{1}},
			wantErr: ErrWrongResourceCount,
		},
		{
			name:    "unknown service",
			req:     Request{UserID: 10, ServiceID: 42, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{1}},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "resource of another service",
			req:     Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{7}},
			wantErr: domain.ErrResourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, decimal.Zero)
			req := tt.req

			_, err := e.uc.Execute(context.Background(), &req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.store.Orders())
			assert.Empty(t, e.publisher.events)
			assert.Zero(t, e.metrics.created)
		})
	}
}

func TestUseCase_Execute_PublishFailureKeepsOrder(t *testing.T) {
	e := newEnv(t, decimal.Zero)
	e.publisher.err = errors.New("broker down")

	resp, err := e.uc.Execute(context.Background(), &Request{UserID: 10, ServiceID: 1, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{1}})
	require.NoError(t, err)
	assert.NotZero(t, resp.Order.ID)
	assert.Len(t, e.store.Orders(), 1)
	assert.Equal(t, 1, e.metrics.failed)
}

func TestUseCase_Execute_ConcurrentSameLane(t *testing.T) {
	e := newEnv(t, decimal.Zero)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.uc.Execute(context.Background(), &Request{
				UserID: int64(100 + i), ServiceID: 1, Start: monday(14, 0), PeopleCount: 2, ResourceIDs: []int64{1},
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
		assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, e.store.Orders(), 1)
}

func TestValidateSelection(t *testing.T) {
	selection := &findResources.Response{
		FreeResources:         []domain.Resource{{ID: 1, Capacity: 6}, {ID: 2, Capacity: 6}},
		MaxCapacity:           6,
		RequiredResourceCount: 2,
		PeopleCount:           10,
	}

	require.NoError(t, validateSelection([]int64{1, 2}, selection))
	require.ErrorIs(t, validateSelection([]int64{1}, selection), ErrWrongResourceCount)

	err := validateSelection([]int64{1, 3, 4}, selection)
	require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	assert.Equal(t, []int64{3, 4}, domain.UnavailableResourceIDs(err))
}

func TestValidateSelection_MixedCapacity(t *testing.T) {
	// Зал на 10 человек и кабинка на 2: для 10 гостей нужен один ресурс, и это должен быть зал
	selection := &findResources.Response{
		FreeResources:         []domain.Resource{{ID: 1, Name: "Big room", Capacity: 10}, {ID: 2, Name: "Booth", Capacity: 2}},
		MaxCapacity:           10,
		RequiredResourceCount: 1,
		PeopleCount:           10,
	}

	require.NoError(t, validateSelection([]int64{1}, selection))

	err := validateSelection([]int64{2}, selection)
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	require.ErrorIs(t, err, ErrWrongResourceCount)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestUseCase_Execute_RejectsResourcesThatCannotSeatEveryone(t *testing.T) {
	e := newEnv(t, decimal.Zero)
	e.store.AddService(domain.Service{
		ID:              2,
		Name:            "Karaoke",
		DurationMinutes: 60,
		WeekdayPrice:    decimal.NewFromInt(2000),
		WeekendPrice:    decimal.NewFromInt(2500),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("22:00"),
	},
		domain.Resource{ID: 10, ServiceID: 2, Name: "Big room", Capacity: 10},
		domain.Resource{ID: 11, ServiceID: 2, Name: "Booth", Capacity: 2},
	)

	_, err := e.uc.Execute(context.Background(), &Request{
		UserID: 7, ServiceID: 2, Start: monday(14, 0), PeopleCount: 10, ResourceIDs: []int64{11},
	})
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Empty(t, e.store.Orders())
	assert.Empty(t, e.publisher.events)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID: 7, ServiceID: 2, Start: monday(14, 0), PeopleCount: 10, ResourceIDs: []int64{10},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, resp.Order.ResourceIDs())
}
