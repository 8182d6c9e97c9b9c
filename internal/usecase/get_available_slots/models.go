package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID   int64     // ID услуги
	Date        time.Time // День в часовом поясе площадки, время игнорируется
	PeopleCount int       // Количество гостей, 0 считается как 1
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time             // Полночь запрошенного дня в часовом поясе площадки
	Service     *domain.Service       // Услуга
	PeopleCount int                   // Количество гостей, под которое считались слоты
	Slots       []domain.AvailableSlot // Слоты по возрастанию времени начала
}
