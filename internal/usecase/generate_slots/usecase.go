package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	venueClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/ptr"
)

// UseCase use case для генерации доступных слотов посадки
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		venueClient:     venueClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case генерации слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: venue=%d, date=%s, party=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultReservationMinutes
	}
	intervalMinutes := req.IntervalMinutes
	if intervalMinutes == 0 {
		intervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	// 2. Получаем площадку: часовой пояс, расписание, минимальное уведомление
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GenerateSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrVenueServiceUnavailable, err)
	}

	// 3. Текущее время в часовом поясе площадки - "сегодня" определяется локально
	loc, err := venue.Location()
	if err != nil {
		uc.logger.Error("GenerateSlots: invalid timezone %q for venue id=%d: %v",
			venue.Timezone, req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid venue timezone: %v", ErrVenueServiceUnavailable, err)
	}
	now := uc.timeProvider.Now().In(loc)

	minNoticeHours := venue.MinBookingNoticeHours
	if minNoticeHours == 0 {
		minNoticeHours = domain.DefaultMinBookingNoticeHours
	}

	// 4. Генерируем кандидаты начала посадки по расписанию на этот день
	schedule := venue.ScheduleFor(req.Date)
	starts, err := generateCandidateStarts(schedule, durationMinutes, intervalMinutes, req.Date, now, minNoticeHours)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInvalidRequest, err)
	}

	if len(starts) == 0 {
		uc.logger.Info("GenerateSlots: no candidates for venue=%d on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return &Response{VenueID: req.VenueID, Date: req.Date, Slots: []domain.TimeSlot{}}, nil
	}

	// 5. Получаем активные столы площадки
	tables, err := uc.tableRepo.GetActiveByVenue(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get tables for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrStorageUnavailable, err)
	}

	// 6. Получаем все занимающие столы бронирования на эту дату ОДНИМ запросом
	filter := domain.VenueReservationsFilter{
		VenueID:         req.VenueID,
		StartDate:       ptr.Ptr(req.Date),
		EndDate:         ptr.Ptr(req.Date),
		IncludeTerminal: false,
	}

	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get reservations for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorageUnavailable, err)
	}

	// 7. Вычисляем свободные столы для каждого кандидата локально
	slots := buildSlots(starts, durationMinutes, req.PartySize, tables, groupReservationsByTable(reservations))

	uc.logger.Info("GenerateSlots: generated %d slots for venue=%d, date=%s",
		len(slots), req.VenueID, req.Date.Format(domain.DateFormat))

	return &Response{
		VenueID: req.VenueID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}
