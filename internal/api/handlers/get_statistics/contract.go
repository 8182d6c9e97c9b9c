package get_statistics

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/orders/models"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, req *models.StatisticsRequest) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
