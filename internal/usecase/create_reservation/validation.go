package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len(guestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinReservationMinutes || req.DurationMinutes > domain.MaxReservationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinReservationMinutes, domain.MaxReservationMinutes)
	}

	if req.ActivityID != nil && *req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateInterval проверяет, что интервал посадки целиком лежит в рабочих часах.
// Посадка, заканчивающаяся ровно во время закрытия, допустима.
func validateInterval(
	schedule venueservice.DaySchedule,
	startTime types.TimeString,
	endTime types.TimeString,
) error {
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return ErrVenueClosed
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(openTime) || endTime.IsAfter(closeTime) {
		return fmt.Errorf("%w: working hours are %s-%s", ErrOutsideWorkingHours, openTime, closeTime)
	}

	// AddMinutes переносит время через полночь - такой интервал тоже вне рабочих часов
	if endTime.IsBefore(startTime) {
		return fmt.Errorf("%w: interval crosses midnight", ErrOutsideWorkingHours)
	}

	return nil
}

// validateReservationTime проверяет, что бронь не в прошлом и не нарушает
// минимальное уведомление. Уведомление проверяется только для сегодняшней даты.
func validateReservationTime(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeHours int,
) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// Если дата брони не сегодня, проверка уведомления не нужна
	if !isSameDay(date, now) {
		return nil
	}

	currentMinutes, err := types.NewTimeString(now).Minutes()
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	// Срез уведомления не переносится через полночь: если он выходит за конец
	// дня, на сегодня бронировать уже поздно
	cutoffMinutes := currentMinutes + minNoticeHours*60
	if cutoffMinutes >= 24*60 {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minNoticeHours)
	}

	if startTime.IsBefore(types.NewTimeStringFromMinutes(cutoffMinutes)) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minNoticeHours)
	}

	return nil
}

// countOverlappingReservations подсчитывает число занимающих стол бронирований,
// пересекающихся с указанным интервалом. Строгие неравенства: примыкающие
// интервалы пересечением не считаются.
func countOverlappingReservations(
	startTime types.TimeString,
	endTime types.TimeString,
	reservations []*domain.Reservation,
) int {
	count := 0

	for _, reservation := range reservations {
		// Отмененные брони и неявки стол не занимают
		if !reservation.OccupiesTable() {
			continue
		}

		reservationEnd, err := reservation.EndTime()
		if err != nil {
			// Некорректную бронь пропускаем
			continue
		}

		if domain.Overlaps(reservation.StartTime, reservationEnd, startTime, endTime) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
