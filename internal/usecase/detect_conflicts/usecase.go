package detect_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	venueClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/ptr"
)

// UseCase use case для поиска конфликтов расписания: двойных броней и
// пересечений броней с активными посадками
type UseCase struct {
	reservationRepo ReservationRepository
	sessionRepo     SessionRepository
	venueClient     VenueServiceClient
	estimator       DurationEstimator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	sessionRepo SessionRepository,
	venueClient VenueServiceClient,
	estimator DurationEstimator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		venueClient:     venueClient,
		estimator:       estimator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case поиска конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DetectConflicts: venue=%d, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venue id must be positive", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	degraded := false

	// 2. Определяем "сегодня" в часовом поясе заведения. Если сервис заведений
	// недоступен, конфликты броней все равно считаем - без блоков посадок.
	loc := time.UTC
	venueKnown := false

	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	switch {
	case err == nil:
		venueLoc, locErr := venue.Location()
		if locErr != nil {
			uc.logger.Warn("DetectConflicts: invalid timezone %q for venue id=%d: %v",
				venue.Timezone, req.VenueID, locErr)
			degraded = true
		} else {
			loc = venueLoc
			venueKnown = true
		}
	case errors.Is(err, venueClient.ErrVenueNotFound):
		uc.logger.Warn("DetectConflicts: venue id=%d not found", req.VenueID)
		return nil, ErrVenueNotFound
	default:
		uc.logger.Warn("DetectConflicts: venue service degraded for id=%d: %v", req.VenueID, err)
		degraded = true
	}

	now := uc.timeProvider.Now().In(loc)

	// 3. Получаем занимающие столы бронирования на дату - основной источник,
	// без него конфликты не посчитать
	filter := domain.VenueReservationsFilter{
		VenueID:         req.VenueID,
		StartDate:       ptr.Ptr(req.Date),
		EndDate:         ptr.Ptr(req.Date),
		IncludeTerminal: false,
	}

	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("DetectConflicts: failed to get reservations for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorageUnavailable, err)
	}

	blocks := projectReservations(reservations)

	// 4. Активные посадки живут только в "сегодня": для других дат их блоки
	// не строятся. Недоступность посадок не роняет весь отчет.
	if venueKnown && isSameDay(req.Date, now) {
		sessions, err := uc.sessionRepo.GetActiveByVenue(ctx, req.VenueID)
		if err != nil {
			uc.logger.Warn("DetectConflicts: sessions unavailable for venue=%d, reporting reservations only: %v",
				req.VenueID, err)
			degraded = true
		} else {
			blocks = append(blocks, projectSessions(ctx, sessions, uc.estimator, loc)...)
		}
	}

	// 5. Попарно сравниваем блоки каждого стола
	conflicts := findConflicts(blocks)

	uc.logger.Info("DetectConflicts: found %d conflict(s) for venue=%d, date=%s",
		len(conflicts), req.VenueID, req.Date.Format(domain.DateFormat))

	return &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		Conflicts: conflicts,
		Degraded:  degraded,
	}, nil
}
