package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64     // ID пользователя
	ServiceID       int64     // ID услуги
	Start           time.Time // Начало
	DurationMinutes int       // 0 - длительность услуги
	PeopleCount     int       // Количество гостей
	ResourceIDs     []int64   // Выбранные ресурсы
	Extras          []string  // Коды дополнительных опций
}

// Response модель ответа с созданным заказом
type Response struct {
	Order *domain.Order // Заказ с услугой и ресурсами
	Quote pricing.Quote // Разбивка стоимости
}
