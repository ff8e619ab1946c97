package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/ptr"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeTableRepo struct {
	tables []*domain.Table
	err    error
}

func (f *fakeTableRepo) GetActiveByVenue(_ context.Context, _ int64) ([]*domain.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tables, nil
}

type fakeVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openVenue(openTime, closeTime string) *venueservice.Venue {
	schedule := venueservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(openTime),
		CloseTime: ptr.Ptr(closeTime),
	}
	return &venueservice.Venue{
		ID:       1,
		Name:     "Тестовая площадка",
		Timezone: "UTC",
		WorkingHours: venueservice.WorkingHours{
			Monday:    schedule,
			Tuesday:   schedule,
			Wednesday: schedule,
			Thursday:  schedule,
			Friday:    schedule,
			Saturday:  schedule,
			Sunday:    schedule,
		},
		MinBookingNoticeHours: 1,
	}
}

func tableWithCapacity(id int64, capacity int) *domain.Table {
	return &domain.Table{ID: id, VenueID: 1, Label: "T", Capacity: &capacity, IsActive: true}
}

func reservationAt(tableID int64, start types.TimeString, minutes int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              int64(100 + tableID),
		TableID:         tableID,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func newTestUseCase(reservationRepo *fakeReservationRepo, tableRepo *fakeTableRepo, venue *venueservice.Venue, now time.Time) *UseCase {
	uc := NewUseCase(reservationRepo, tableRepo, &fakeVenueClient{venue: venue}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func baseRequest() *Request {
	return &Request{
		VenueID:         1,
		Date:            time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		PartySize:       4,
		DurationMinutes: 120,
		IntervalMinutes: 30,
	}
}

// Слоты генерируются только там, где посадка целиком помещается в рабочие часы:
// при закрытии в 22:00 и длительности 120 минут последний слот начинается в 20:00,
// причем его конец совпадает со временем закрытия.
func TestExecute_SlotsFitWithinWorkingHours(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	first := resp.Slots[0]
	last := resp.Slots[len(resp.Slots)-1]

	assert.Equal(t, types.TimeString("10:00"), first.StartTime)
	assert.Equal(t, types.TimeString("20:00"), last.StartTime)
	assert.Equal(t, types.TimeString("22:00"), last.EndTime)

	// 10:00 .. 20:00 с шагом 30 минут
	assert.Len(t, resp.Slots, 21)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, []int64{1}, slot.TableIDs)
	}
}

// Занятый стол выпадает из пересекающихся слотов, но примыкающие слоты остаются доступны
func TestExecute_ReservationBlocksOverlappingSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, "18:00", 120, domain.StatusConfirmed),
		}},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	byStart := make(map[types.TimeString]domain.TimeSlot)
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot
	}

	// 16:30-18:30 пересекается с бронью 18:00-20:00
	assert.False(t, byStart["16:30"].Available)
	assert.False(t, byStart["18:00"].Available)
	assert.False(t, byStart["19:30"].Available)

	// 16:00-18:00 и 20:00-22:00 примыкают к брони - доступны
	assert.True(t, byStart["16:00"].Available)
	assert.True(t, byStart["20:00"].Available)
}

// Отмененная бронь стол не занимает
func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, "18:00", 120, domain.StatusCancelledByGuest),
		}},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s should be available", slot.StartTime)
	}
}

// Слот без подходящих столов помечается недоступным, но из сетки не выпадает
func TestExecute_SlotWithoutTablesMarkedUnavailable(t *testing.T) {
	req := baseRequest()
	req.PartySize = 6

	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 21)

	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
		assert.Empty(t, slot.TableIDs)
	}
}

// Для сегодняшней даты слоты раньше (текущее время + минимальное уведомление) отбрасываются
func TestExecute_MinNoticeFiltersTodaySlots(t *testing.T) {
	req := baseRequest()
	req.Date = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	// Сейчас 14:10, уведомление 1 час - первый допустимый слот 15:30
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 12, 14, 10, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	assert.Equal(t, types.TimeString("15:30"), resp.Slots[0].StartTime)
}

// Поздно вечером срез уведомления не переносится через полночь: когда
// текущее время плюс уведомление выходит за конец дня, слотов на сегодня нет
func TestExecute_LateNightNoticeLeavesNoSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "23:59"),
		time.Date(2026, 9, 12, 23, 30, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

// На будущую дату фильтр по текущему времени не применяется
func TestExecute_FutureDateNotFilteredByNotice(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
}

// В выходной день площадки слотов нет, но это не ошибка
func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	venue := openVenue("10:00", "22:00")
	venue.WorkingHours.Saturday = venueservice.DaySchedule{IsOpen: false}

	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		venue,
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	// 2026-09-12 - суббота
	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

// Прошедшая дата дает пустой результат без ошибки
func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	req := baseRequest()
	req.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{},
		&fakeVenueClient{err: venueservice.ErrVenueNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_StorageErrorIsNotMasked(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{err: errors.New("connection refused")},
		&fakeTableRepo{tables: []*domain.Table{tableWithCapacity(1, 4)}},
		openVenue("10:00", "22:00"),
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
