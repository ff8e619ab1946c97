package detect_conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/estimate"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
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

type fakeSessionRepo struct {
	sessions []*domain.Session
	err      error
}

func (f *fakeSessionRepo) GetActiveByVenue(_ context.Context, _ int64) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
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

func utcVenue() *venueservice.Venue {
	return &venueservice.Venue{ID: 1, Name: "Тестовая площадка", Timezone: "UTC"}
}

func reservationAt(id, tableID int64, guest string, start types.TimeString, minutes int) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		VenueID:         1,
		TableID:         tableID,
		GuestName:       guest,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(
	reservationRepo *fakeReservationRepo,
	sessionRepo *fakeSessionRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		reservationRepo,
		sessionRepo,
		&fakeVenueClient{venue: utcVenue()},
		estimate.Fixed{Minutes: 90},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func baseRequest() *Request {
	return &Request{
		VenueID: 1,
		Date:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}
}

// Две пересекающиеся брони одного стола образуют конфликт, степень
// определяется длиной пересечения
func TestExecute_DoubleBookingDetected(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
			reservationAt(2, 10, "Петров", "19:00", 120),
		}},
		&fakeSessionRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)

	conflict := resp.Conflicts[0]
	assert.Equal(t, int64(10), conflict.TableID)
	assert.Equal(t, 60, conflict.OverlapMinutes)
	assert.Equal(t, domain.SeverityCritical, conflict.Severity)
	assert.Equal(t, int64(1), conflict.First.SourceID)
	assert.Equal(t, int64(2), conflict.Second.SourceID)
}

// Пересечение меньше критического порога дает предупреждение
func TestExecute_ShortOverlapIsWarning(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
			reservationAt(2, 10, "Петров", "19:50", 120),
		}},
		&fakeSessionRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)

	assert.Equal(t, 10, resp.Conflicts[0].OverlapMinutes)
	assert.Equal(t, domain.SeverityWarning, resp.Conflicts[0].Severity)
}

// Примыкающие брони и брони разных столов конфликтами не считаются
func TestExecute_NoFalseConflicts(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
			reservationAt(2, 10, "Петров", "20:00", 120),
			reservationAt(3, 11, "Сидоров", "18:30", 120),
		}},
		&fakeSessionRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
}

// Активная посадка на сегодняшнюю дату пересекается с ближайшей бронью стола
func TestExecute_SessionConflictsWithReservationToday(t *testing.T) {
	now := time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
		}},
		&fakeSessionRepo{sessions: []*domain.Session{{
			ID:        7,
			VenueID:   1,
			TableID:   10,
			PartySize: 2,
			OpenedAt:  now,
		}}},
		now,
	)

	req := baseRequest()
	req.Date = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)

	conflict := resp.Conflicts[0]
	// Посадка 17:00 + оценка 90 минут = 18:30, бронь 18:00-20:00
	assert.Equal(t, 30, conflict.OverlapMinutes)
	assert.Equal(t, domain.BlockKindSession, conflict.First.Kind)
	assert.True(t, conflict.First.Estimated)
	assert.Equal(t, domain.BlockKindReservation, conflict.Second.Kind)
}

// Для будущей даты активные посадки в таймлайн не проецируются
func TestExecute_SessionsIgnoredForFutureDate(t *testing.T) {
	now := time.Date(2026, 9, 10, 17, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
		}},
		&fakeSessionRepo{sessions: []*domain.Session{{
			ID:       7,
			VenueID:  1,
			TableID:  10,
			OpenedAt: now,
		}}},
		now,
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
}

// Недоступность посадок не роняет отчет - он деградирует до броней
func TestExecute_SessionFailureDegrades(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			reservationAt(1, 10, "Иванов", "18:00", 120),
			reservationAt(2, 10, "Петров", "19:00", 120),
		}},
		&fakeSessionRepo{err: errors.New("connection refused")},
		now,
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Conflicts, 1)
}

// Недоступность хранилища броней - фатальная ошибка, а не пустой отчет
func TestExecute_ReservationStorageFailureFails(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{err: errors.New("connection refused")},
		&fakeSessionRepo{},
		time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeSessionRepo{},
		&fakeVenueClient{err: venueservice.ErrVenueNotFound},
		estimate.Fixed{Minutes: 90},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
