package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	reservationRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/reservation"
	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

// fakeRepo хранит одно бронирование и фиксирует вызовы изменения статуса
type fakeRepo struct {
	reservation  *domain.Reservation
	err          error
	updatedTo    *domain.ReservationStatus
	cancelledTo  *domain.ReservationStatus
	cancelReason string
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Reservation{f.reservation}, nil
}

func (f *fakeRepo) GetByGuestPhone(_ context.Context, _ string) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Reservation{f.reservation}, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus, at time.Time) error {
	f.updatedTo = &status
	f.reservation.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, _ int64, status domain.ReservationStatus, reason string, _ time.Time) error {
	f.cancelledTo = &status
	f.cancelReason = reason
	f.reservation.Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reservationInStatus(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              1,
		VenueID:         1,
		TableID:         10,
		GuestName:       "Иванов",
		PartySize:       4,
		Date:            time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       "18:00",
		DurationMinutes: 120,
		Status:          status,
	}
}

// Линейный путь: pending -> confirmed -> arrived -> seated -> completed
func TestUpdateStatus_HappyPath(t *testing.T) {
	steps := []struct {
		from domain.ReservationStatus
		to   string
	}{
		{domain.StatusPending, "confirmed"},
		{domain.StatusConfirmed, "arrived"},
		{domain.StatusArrived, "seated"},
		{domain.StatusSeated, "completed"},
	}

	for _, step := range steps {
		repo := &fakeRepo{reservation: reservationInStatus(step.from)}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: step.to})
		require.NoError(t, err, "%s -> %s", step.from, step.to)
		require.NotNil(t, repo.updatedTo)
		assert.Equal(t, step.to, string(*repo.updatedTo))
		assert.Equal(t, step.to, resp.Status)
	}
}

// Перепрыгивание ступеней запрещено
func TestUpdateStatus_SkippingStepsRejected(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "seated"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updatedTo)
}

// Повторное применение текущего статуса - конфликт, а не no-op
func TestUpdateStatus_ReapplyRejected(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusConfirmed)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Из терминального статуса переходов нет
func TestUpdateStatus_TerminalStatusFrozen(t *testing.T) {
	for _, terminal := range []domain.ReservationStatus{
		domain.StatusCompleted,
		domain.StatusCancelledByGuest,
		domain.StatusNoShow,
	} {
		repo := &fakeRepo{reservation: reservationInStatus(terminal)}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", terminal)
	}
}

// Неявка достижима из любого нетерминального статуса
func TestUpdateStatus_NoShowFromAnyActiveStatus(t *testing.T) {
	for _, from := range []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusArrived,
		domain.StatusSeated,
	} {
		repo := &fakeRepo{reservation: reservationInStatus(from)}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
		assert.NoError(t, err, "from %s", from)
	}
}

// Отмена через обновление статуса отклоняется - ей нужна причина
func TestUpdateStatus_CancellationRedirectedToCancel(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusConfirmed)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled_by_guest"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "vanished"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_ByGuestAndVenue(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusConfirmed)}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		CancelledBy:        "guest",
		CancellationReason: "планы изменились",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelledTo)
	assert.Equal(t, domain.StatusCancelledByGuest, *repo.cancelledTo)
	assert.Equal(t, "планы изменились", repo.cancelReason)

	repo = &fakeRepo{reservation: reservationInStatus(domain.StatusSeated)}
	svc = NewService(repo, nopLogger{})

	err = svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CancelledBy: "venue"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByVenue, *repo.cancelledTo)
}

func TestCancel_TerminalReservationRejected(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusCompleted)}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CancelledBy: "guest"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_UnknownInitiator(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CancelledBy: "manager"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{err: reservationRepo.ErrReservationNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetVenueReservations_InvalidStatusFilter(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	bad := "vanished"
	_, err := svc.GetVenueReservations(context.Background(), &models.GetVenueReservationsRequest{
		VenueID: 1,
		Status:  &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetGuestReservations_RequiresPhone(t *testing.T) {
	repo := &fakeRepo{reservation: reservationInStatus(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetGuestReservations(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
