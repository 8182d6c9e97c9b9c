package get_price_quote

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
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fakeCatalog struct{ err error }

func (c fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	if id != 1 {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{
		ID:              1,
		Name:            "Bowling",
		DurationMinutes: 60,
		WeekdayPrice:    decimal.NewFromInt(1000),
		WeekendPrice:    decimal.NewFromInt(1500),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("22:00"),
	}, nil
}

type fakeUserClient struct {
	discount decimal.Decimal
	calls    int
}

func (c *fakeUserClient) GetDiscountPercent(context.Context, int64) decimal.Decimal {
	c.calls++
	return c.discount
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	friday := time.Date(2025, 3, 14, 18, 0, 0, 0, msk)
	saturday := time.Date(2025, 3, 15, 18, 0, 0, 0, msk)

	tests := []struct {
		name      string
		req       Request
		discount  decimal.Decimal
		wantTotal string
		wantCalls int
	}{
		{name: "weekday anonymous", req: Request{ServiceID: 1, Start: friday}, discount: decimal.NewFromInt(50), wantTotal: "1000.00"},
		{name: "weekend with extras", req: Request{ServiceID: 1, Start: saturday, Extras: []string{"food"}}, wantTotal: "2500.00"},
		{name: "user discount", req: Request{ServiceID: 1, Start: friday, UserID: 5}, discount: decimal.NewFromInt(20), wantTotal: "800.00", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserClient{discount: tt.discount}
			uc := NewUseCase(fakeCatalog{}, pricing.NewEngine(nil, msk), users, nopLogger{})

			req := tt.req
			resp, err := uc.Execute(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, resp.Quote.Total.StringFixed(2))
			assert.Equal(t, tt.wantCalls, users.calls)
			assert.Equal(t, time.Hour, resp.End.Sub(resp.Start))
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 14, 18, 0, 0, 0, msk)
	uc := NewUseCase(fakeCatalog{}, pricing.NewEngine(nil, msk), &fakeUserClient{}, nopLogger{})

	_, err := uc.Execute(ctx, &Request{ServiceID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ServiceID: 1, Start: start, Extras: []string{"sauna"}})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = uc.Execute(ctx, &Request{ServiceID: 2, Start: start})
	require.ErrorIs(t, err, ErrServiceNotFound)

	uc = NewUseCase(fakeCatalog{err: errors.New("timeout")}, pricing.NewEngine(nil, msk), &fakeUserClient{}, nopLogger{})
	_, err = uc.Execute(ctx, &Request{ServiceID: 1, Start: start})
	require.ErrorIs(t, err, ErrInternal)
}
