package generate_slots

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

// Request запрос на генерацию слотов для посадки
type Request struct {
	VenueID         int64     // ID заведения
	Date            time.Time // дата, на которую генерируются слоты
	PartySize       int       // размер компании гостей
	DurationMinutes int       // желаемая длительность посадки (0 - длительность по умолчанию)
	IntervalMinutes int       // шаг сетки слотов (0 - шаг по умолчанию)
}

// Response ответ с доступными слотами
type Response struct {
	VenueID int64             // ID заведения
	Date    time.Time         // дата
	Slots   []domain.TimeSlot // слоты в хронологическом порядке
}
