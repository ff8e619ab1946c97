package check_availability

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// Request модель запроса проверки доступности стола на интервал
type Request struct {
	TableID   int64            // ID стола
	Date      time.Time        // Дата (без времени)
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала (полуоткрытый)

	// При редактировании бронирования его собственный интервал
	// не должен считаться конфликтом
	ExcludeReservationID *int64
}

// Response модель ответа с результатом проверки
type Response struct {
	Available bool
	Conflicts []Conflict
}

// Conflict описывает бронирование, пересекающееся с запрошенным интервалом
type Conflict struct {
	ReservationID  int64
	GuestName      string
	StartTime      types.TimeString
	EndTime        types.TimeString
	OverlapMinutes int
}
