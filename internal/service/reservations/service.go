package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	reservationRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/reservation"
	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetVenueReservations получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по столу, периоду, статусу и включению терминальных броней
//
// Примеры использования:
// - Все занимающие столы брони: GetVenueReservations(ctx, &GetVenueReservationsRequest{VenueID: 1})
// - Брони одного стола: указать TableID
// - Брони на дату: StartDate и EndDate указывают на одну дату
// - Включая отменённые и неявки: IncludeTerminal = true
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetVenueReservations: fetching reservations for venue=%d", req.VenueID)

	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: successfully fetched %d reservations for venue=%d",
		len(reservations), req.VenueID)
	return models.FromDomainReservationList(reservations), nil
}

// GetGuestReservations получает историю бронирований гостя по телефону
func (s *Service) GetGuestReservations(ctx context.Context, phone string) (*models.ReservationListResponse, error) {
	s.logger.Info("GetGuestReservations: fetching reservations for guest phone")

	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByGuestPhone(ctx, phone)
	if err != nil {
		s.logger.Error("GetGuestReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetGuestReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestReservations: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит бронирование в новый статус по машине состояний.
// Отмена идет через Cancel - ей нужна причина и инициатор.
// Повторное применение уже установленного статуса отклоняется как конфликт.
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", reservationID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if newStatus == domain.StatusCancelledByGuest || newStatus == domain.StatusCancelledByVenue {
		s.logger.Warn("UpdateStatus: cancellation of reservation id=%d requested through status update", reservationID)
		return nil, fmt.Errorf("%w: cancellation requires a reason, use the cancel operation", ErrInvalidInput)
	}

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем переход по машине состояний
	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	now := s.timeProvider.Now()

	// Обновляем статус с отметкой времени перехода
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus, now); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)

	// Возвращаем свежее состояние
	updated, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-fetch reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(updated), nil
}

// Cancel отменяет бронирование от имени гостя или площадки
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by %s", reservationID, req.CancelledBy)

	// Определяем статус отмены по инициатору
	var cancelStatus domain.ReservationStatus
	switch req.CancelledBy {
	case "guest":
		cancelStatus = domain.StatusCancelledByGuest
	case "venue":
		cancelStatus = domain.StatusCancelledByVenue
	default:
		s.logger.Warn("Cancel: unknown initiator %q for reservation id=%d", req.CancelledBy, reservationID)
		return fmt.Errorf("%w: cancelledBy must be \"guest\" or \"venue\"", ErrInvalidInput)
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отмена возможна из любого нетерминального статуса
	if !reservation.CanTransitionTo(cancelStatus) {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, cancelStatus)
	}

	// Отменяем бронирование
	if err := s.reservationRepo.Cancel(ctx, reservationID, cancelStatus, req.CancellationReason, s.timeProvider.Now()); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", reservationID, cancelStatus)
	return nil
}
