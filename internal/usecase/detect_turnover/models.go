package detect_turnover

import "github.com/avdeev-m/TMS-BookingService/internal/domain"

// Request запрос на поиск рисков несвоевременного освобождения столов.
// Отчет всегда строится от текущего момента в часовом поясе заведения.
type Request struct {
	VenueID int64 // ID заведения
}

// Response ответ со списком рисков, отсортированных для разбора:
// сначала по убыванию серьезности, затем по ближайшей броне
type Response struct {
	VenueID int64                 // ID заведения
	Risks   []domain.TurnoverRisk // найденные риски
}
