package generate_slots

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// generateCandidateStarts генерирует список всех возможных начал посадки на день.
// Кандидаты идут от времени открытия заведения с фиксированным шагом interval.
// Затем фильтруются с учетом текущего времени и минимального уведомления о брони.
func generateCandidateStarts(
	schedule venueservice.DaySchedule,
	durationMinutes int,
	intervalMinutes int,
	requestDate time.Time,
	now time.Time,
	minNoticeHours int,
) ([]types.TimeString, error) {
	// Прошедшие даты не бронируются
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Если заведение закрыто в этот день
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: Генерируем ВСЕ кандидаты от открытия до закрытия с фиксированным шагом.
	// Посадка, заканчивающаяся ровно во время закрытия, допустима.
	allStarts := make([]types.TimeString, 0)
	currentStart := openTime

	for currentStart.IsBefore(closeTime) {
		slotEnd, err := currentStart.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}
		// AddMinutes переносит время через полночь - такая посадка тоже выходит
		// за время закрытия
		if slotEnd.IsAfter(closeTime) || slotEnd.IsBefore(currentStart) {
			break
		}

		allStarts = append(allStarts, currentStart)
		currentStart, err = currentStart.AddMinutes(intervalMinutes)
		if err != nil {
			return nil, err
		}
	}

	// Шаг 2: Если дата НЕ сегодня - возвращаем все кандидаты
	if !isSameDay(requestDate, now) {
		return allStarts, nil
	}

	// Шаг 3: Если дата - сегодня, фильтруем кандидаты по времени.
	// Минимально допустимое начало = текущее время + минимальное уведомление.
	// Срез не переносится через полночь: вышел за конец дня - слотов на сегодня нет
	currentMinutes, err := types.NewTimeString(now).Minutes()
	if err != nil {
		return nil, err
	}

	cutoffMinutes := currentMinutes + minNoticeHours*60
	if cutoffMinutes >= 24*60 {
		return []types.TimeString{}, nil
	}
	minAllowedTime := types.NewTimeStringFromMinutes(cutoffMinutes)

	availableStarts := make([]types.TimeString, 0)
	for _, start := range allStarts {
		if !start.IsBefore(minAllowedTime) {
			availableStarts = append(availableStarts, start)
		}
	}

	return availableStarts, nil
}

// buildSlots вычисляет для каждого кандидата список столов, свободных на весь интервал
func buildSlots(
	starts []types.TimeString,
	durationMinutes int,
	partySize int,
	tables []*domain.Table,
	reservationsByTable map[int64][]*domain.Reservation,
) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(starts))

	for _, slotStart := range starts {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		tableIDs := make([]int64, 0)
		for _, table := range tables {
			// Пропускаем столы, не вмещающие компанию
			if !table.Fits(partySize) {
				continue
			}
			if tableIsFree(table.ID, slotStart, slotEnd, reservationsByTable) {
				tableIDs = append(tableIDs, table.ID)
			}
		}

		result = append(result, domain.TimeSlot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: durationMinutes,
			TableIDs:        tableIDs,
			Available:       len(tableIDs) > 0,
		})
	}

	return result
}

// tableIsFree проверяет, что ни одно бронирование стола не пересекается с интервалом.
// Бронирование, заканчивающееся ровно в начале интервала (или наоборот), пересечением
// НЕ считается - интервалы полуоткрытые.
func tableIsFree(
	tableID int64,
	slotStart, slotEnd types.TimeString,
	reservationsByTable map[int64][]*domain.Reservation,
) bool {
	for _, reservation := range reservationsByTable[tableID] {
		// Отмененные брони и неявки стол не занимают
		if !reservation.OccupiesTable() {
			continue
		}
		reservationEnd, err := reservation.EndTime()
		if err != nil {
			// Некорректную бронь пропускаем
			continue
		}
		if domain.Overlaps(reservation.StartTime, reservationEnd, slotStart, slotEnd) {
			return false
		}
	}
	return true
}

// groupReservationsByTable группирует бронирования по ID стола
func groupReservationsByTable(reservations []*domain.Reservation) map[int64][]*domain.Reservation {
	grouped := make(map[int64][]*domain.Reservation, len(reservations))
	for _, reservation := range reservations {
		grouped[reservation.TableID] = append(grouped[reservation.TableID], reservation)
	}
	return grouped
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
