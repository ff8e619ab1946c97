package detect_conflicts

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

// Request запрос на поиск конфликтов расписания площадки
type Request struct {
	VenueID int64     // ID заведения
	Date    time.Time // дата, за которую строится таймлайн
}

// Response ответ со списком найденных конфликтов
type Response struct {
	VenueID   int64             // ID заведения
	Date      time.Time         // дата
	Conflicts []domain.Conflict // конфликты, сгруппированные по столам
	Degraded  bool              // true, если часть источников была недоступна
}
