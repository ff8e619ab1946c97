package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	tableRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/table"
	catalogClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/catalogservice"
	venueClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования стола
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueServiceClient
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	venueClient VenueServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		venueClient:     venueClient,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: venue=%d, table=%d, date=%s, time=%s, party=%d",
		req.VenueID, req.TableID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultReservationMinutes
	}

	endTime, err := req.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// 2. Получаем заведение: часовой пояс, расписание, минимальное уведомление
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Текущее время в часовом поясе заведения
	loc, err := venue.Location()
	if err != nil {
		uc.logger.Error("CreateReservation: invalid timezone %q for venue id=%d: %v",
			venue.Timezone, req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid venue timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 4. Получаем стол и проверяем, что он подходит
	table, err := uc.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("CreateReservation: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("CreateReservation: failed to get table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}

	if table.VenueID != req.VenueID {
		uc.logger.Warn("CreateReservation: table id=%d does not belong to venue id=%d", req.TableID, req.VenueID)
		return nil, ErrTableNotFound
	}

	if !table.IsActive {
		uc.logger.Warn("CreateReservation: table id=%d is not active", req.TableID)
		return nil, ErrTableInactive
	}

	if !table.Fits(req.PartySize) {
		uc.logger.Warn("CreateReservation: table id=%d does not fit party of %d", req.TableID, req.PartySize)
		return nil, ErrTableTooSmall
	}

	// 5. Проверяем рабочие часы и время брони
	schedule := venue.ScheduleFor(req.Date)
	if err := validateInterval(schedule, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateReservation: interval validation failed: %v", err)
		return nil, err
	}

	if err := validateReservationTime(req.Date, req.StartTime, now, uc.minNoticeHours(venue)); err != nil {
		uc.logger.Warn("CreateReservation: time validation failed: %v", err)
		return nil, err
	}

	// 6. Проверяем существование активности, если она указана
	if req.ActivityID != nil {
		if _, err := uc.catalogClient.GetActivity(ctx, *req.ActivityID); err != nil {
			if errors.Is(err, catalogClient.ErrActivityNotFound) {
				uc.logger.Warn("CreateReservation: activity id=%d not found", *req.ActivityID)
				return nil, ErrActivityNotFound
			}
			uc.logger.Error("CreateReservation: failed to get activity id=%d: %v", *req.ActivityID, err)
			return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 7. Выполняем проверку занятости и вставку в сериализуемой транзакции.
	// Выборка бронирований стола внутри транзакции берет блокировку FOR UPDATE,
	// поэтому две конкурирующие брони одного стола не пройдут обе.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем все занимающие стол бронирования на эту дату с блокировкой
		// Внутри транзакции причину оборачиваем через %w: менеджер транзакций
		// должен видеть SQLSTATE 40001 сквозь цепочку ошибок
		reservations, err := uc.reservationRepo.GetByTableAndDate(txCtx, req.TableID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 7.2. Проверяем пересечения с существующими бронями
		if overlapping := countOverlappingReservations(req.StartTime, endTime, reservations); overlapping > 0 {
			uc.logger.Warn("CreateReservation: table id=%d already has %d overlapping reservation(s) on %s %s-%s",
				req.TableID, overlapping, req.Date.Format(domain.DateFormat), req.StartTime, endTime)
			return ErrTableNotAvailable
		}

		// 7.3. Создаем бронирование в статусе pending
		reservation := &domain.Reservation{
			VenueID:         req.VenueID,
			TableID:         req.TableID,
			GuestName:       req.GuestName,
			GuestPhone:      req.GuestPhone,
			PartySize:       req.PartySize,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			ActivityID:      req.ActivityID,
			Source:          req.Source,
			Notes:           req.Notes,
			CreatedBy:       req.CreatedBy,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш конкурирующей транзакции означает, что стол успели занять
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: lost serializable race for table id=%d: %v", req.TableID, err)
			return nil, ErrTableNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		VenueID:         result.VenueID,
		TableID:         result.TableID,
		GuestName:       result.GuestName,
		GuestPhone:      result.GuestPhone,
		PartySize:       result.PartySize,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ActivityID:      result.ActivityID,
		Source:          result.Source,
		Notes:           result.Notes,
		CreatedBy:       result.CreatedBy,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// minNoticeHours возвращает минимальное уведомление заведения или значение по умолчанию
func (uc *UseCase) minNoticeHours(venue *venueClient.Venue) int {
	if venue.MinBookingNoticeHours > 0 {
		return venue.MinBookingNoticeHours
	}
	return domain.DefaultMinBookingNoticeHours
}
