package detect_turnover

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

// Сейчас 17:00; посадки открыты в разное время, оценка длительности 90 минут
var testNow = time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC)

func sessionOpenedAt(id, tableID int64, opened time.Time) *domain.Session {
	return &domain.Session{ID: id, VenueID: 1, TableID: tableID, PartySize: 2, OpenedAt: opened}
}

func upcomingReservation(id, tableID int64, guest string, start types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		VenueID:         1,
		TableID:         tableID,
		GuestName:       guest,
		PartySize:       4,
		StartTime:       start,
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(reservationRepo *fakeReservationRepo, sessionRepo *fakeSessionRepo) *UseCase {
	uc := NewUseCase(
		reservationRepo,
		sessionRepo,
		&fakeVenueClient{venue: &venueservice.Venue{ID: 1, Name: "Тестовая площадка", Timezone: "UTC"}},
		estimate.Fixed{Minutes: 90},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// Зазор определяет серьезность риска: 10 минут - high, 20 - medium, 45 - low,
// 90 минут - риска нет
func TestExecute_BufferSeverityTiers(t *testing.T) {
	// Все посадки открыты в 16:30, освобождение по оценке в 18:00
	opened := time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			upcomingReservation(1, 10, "Иванов", "18:10"),  // зазор 10 минут
			upcomingReservation(2, 11, "Петров", "18:20"),  // зазор 20 минут
			upcomingReservation(3, 12, "Сидоров", "18:45"), // зазор 45 минут
			upcomingReservation(4, 13, "Козлов", "19:30"),  // зазор 90 минут - не риск
		}},
		&fakeSessionRepo{sessions: []*domain.Session{
			sessionOpenedAt(101, 10, opened),
			sessionOpenedAt(102, 11, opened),
			sessionOpenedAt(103, 12, opened),
			sessionOpenedAt(104, 13, opened),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Risks, 3)

	assert.Equal(t, domain.RiskHigh, resp.Risks[0].Severity)
	assert.Equal(t, 10, resp.Risks[0].BufferMinutes)
	assert.Equal(t, int64(101), resp.Risks[0].SessionID)

	assert.Equal(t, domain.RiskMedium, resp.Risks[1].Severity)
	assert.Equal(t, 20, resp.Risks[1].BufferMinutes)

	assert.Equal(t, domain.RiskLow, resp.Risks[2].Severity)
	assert.Equal(t, 45, resp.Risks[2].BufferMinutes)
}

// Риски отсортированы по серьезности, внутри уровня - по ближайшей броне
func TestExecute_TriageOrdering(t *testing.T) {
	opened := time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			upcomingReservation(1, 10, "Иванов", "18:45"),  // low
			upcomingReservation(2, 11, "Петров", "18:05"),  // high
			upcomingReservation(3, 12, "Сидоров", "18:00"), // high, раньше
		}},
		&fakeSessionRepo{sessions: []*domain.Session{
			sessionOpenedAt(101, 10, opened),
			sessionOpenedAt(102, 11, opened),
			sessionOpenedAt(103, 12, opened),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Risks, 3)

	assert.Equal(t, int64(103), resp.Risks[0].SessionID)
	assert.Equal(t, int64(102), resp.Risks[1].SessionID)
	assert.Equal(t, int64(101), resp.Risks[2].SessionID)
}

// Посадка, по оценке занимающая стол дольше, чем осталось до прихода гостей,
// дает отрицательный зазор и высокий риск
func TestExecute_NegativeBufferIsHighRisk(t *testing.T) {
	// Посадка с 16:30, освобождение по оценке в 18:00 - позже брони на 17:30
	opened := time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			upcomingReservation(1, 10, "Иванов", "17:30"),
		}},
		&fakeSessionRepo{sessions: []*domain.Session{
			sessionOpenedAt(101, 10, opened),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Risks, 1)

	assert.Equal(t, -30, resp.Risks[0].BufferMinutes)
	assert.Equal(t, domain.RiskHigh, resp.Risks[0].Severity)
	assert.Equal(t, types.TimeString("18:00"), resp.Risks[0].EstimatedFreeAt)
}

// Брони за пределами окна просмотра в отчет не попадают
func TestExecute_LookaheadWindow(t *testing.T) {
	opened := time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			// Начало через 2.5 часа - дальше окна в 120 минут
			upcomingReservation(1, 10, "Иванов", "19:30"),
		}},
		&fakeSessionRepo{sessions: []*domain.Session{
			sessionOpenedAt(101, 10, opened),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Risks)
}

// Стол без предстоящей брони и стол без посадки рисков не дают
func TestExecute_UnpairedSessionsAndReservations(t *testing.T) {
	opened := time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeReservationRepo{reservations: []*domain.Reservation{
			upcomingReservation(1, 20, "Иванов", "18:00"), // стол 20 свободен
		}},
		&fakeSessionRepo{sessions: []*domain.Session{
			sessionOpenedAt(101, 10, opened), // у стола 10 нет брони
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Risks)
}

func TestExecute_NoActiveSessions(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeSessionRepo{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Risks)
}

func TestExecute_StorageFailureFails(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeSessionRepo{err: errors.New("connection refused")})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1})
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

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
