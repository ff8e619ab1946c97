package detect_turnover

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	venueClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/ptr"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// UseCase use case для поиска рисков оборота: активных посадок, которые по
// оценке не успеют освободить стол к приходу следующей брони
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

// Execute выполняет use case поиска рисков оборота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DetectTurnover: venue=%d", req.VenueID)

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venue id must be positive", ErrInvalidRequest)
	}

	// 2. Получаем заведение - без его часового пояса "сейчас" не определить
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("DetectTurnover: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("DetectTurnover: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrVenueServiceUnavailable, err)
	}

	loc, err := venue.Location()
	if err != nil {
		uc.logger.Error("DetectTurnover: invalid timezone %q for venue id=%d: %v",
			venue.Timezone, req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid venue timezone: %v", ErrVenueServiceUnavailable, err)
	}
	now := uc.timeProvider.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// 3. Получаем активные посадки
	sessions, err := uc.sessionRepo.GetActiveByVenue(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("DetectTurnover: failed to get sessions for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrStorageUnavailable, err)
	}

	if len(sessions) == 0 {
		return &Response{VenueID: req.VenueID, Risks: []domain.TurnoverRisk{}}, nil
	}

	// 4. Получаем сегодняшние занимающие столы бронирования одним запросом
	filter := domain.VenueReservationsFilter{
		VenueID:         req.VenueID,
		StartDate:       ptr.Ptr(today),
		EndDate:         ptr.Ptr(today),
		IncludeTerminal: false,
	}

	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("DetectTurnover: failed to get reservations for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorageUnavailable, err)
	}

	// 5. Сопоставляем каждой посадке ближайшую предстоящую бронь ее стола
	risks := uc.collectRisks(ctx, sessions, reservations, now, loc)

	// 6. Сортируем для разбора: сначала серьезность, затем ближайшая бронь
	sort.SliceStable(risks, func(i, j int) bool {
		ri, rj := domain.RiskSeverityRank(risks[i].Severity), domain.RiskSeverityRank(risks[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return risks[i].ReservationStart.IsBefore(risks[j].ReservationStart)
	})

	uc.logger.Info("DetectTurnover: found %d risk(s) for venue=%d", len(risks), req.VenueID)

	return &Response{VenueID: req.VenueID, Risks: risks}, nil
}

// collectRisks строит риски: для каждой активной посадки берется ближайшая
// предстоящая бронь того же стола в окне просмотра, и если оцененного времени
// освобождения не хватает на безопасный зазор, посадка попадает в отчет
func (uc *UseCase) collectRisks(
	ctx context.Context,
	sessions []*domain.Session,
	reservations []*domain.Reservation,
	now time.Time,
	loc *time.Location,
) []domain.TurnoverRisk {
	currentTime := types.NewTimeString(now)
	upcomingByTable := groupUpcomingByTable(reservations, currentTime)

	risks := make([]domain.TurnoverRisk, 0)

	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}

		next := upcomingByTable[session.TableID]
		if next == nil {
			continue
		}

		reservationStart, err := next.StartTime.Minutes()
		if err != nil {
			continue
		}
		nowMinutes, err := currentTime.Minutes()
		if err != nil {
			continue
		}

		// Брони за пределами окна просмотра пока не горят
		if reservationStart-nowMinutes > domain.TurnoverLookaheadMinutes {
			continue
		}

		// Оценка освобождения: начало посадки + ожидаемая длительность
		openedAt := types.NewTimeString(session.OpenedAt.In(loc))
		estimatedMinutes := uc.estimator.EstimateMinutes(ctx, session.ActivityID)
		estimatedFreeAt, err := openedAt.AddMinutes(estimatedMinutes)
		if err != nil {
			continue
		}

		freeAt, err := estimatedFreeAt.Minutes()
		if err != nil {
			continue
		}

		// Зазор может быть отрицательным: стол предположительно занят дольше,
		// чем осталось до прихода гостей
		buffer := reservationStart - freeAt
		if buffer >= domain.TurnoverSafetyBufferMinutes {
			continue
		}

		risks = append(risks, domain.TurnoverRisk{
			TableID:          session.TableID,
			SessionID:        session.ID,
			ReservationID:    next.ID,
			GuestName:        next.GuestName,
			PartySize:        next.PartySize,
			ReservationStart: next.StartTime,
			EstimatedFreeAt:  estimatedFreeAt,
			BufferMinutes:    buffer,
			Severity:         domain.RiskSeverityForBuffer(buffer),
		})
	}

	return risks
}

// groupUpcomingByTable возвращает для каждого стола ближайшую занимающую его
// бронь, начинающуюся не раньше текущего времени
func groupUpcomingByTable(reservations []*domain.Reservation, currentTime types.TimeString) map[int64]*domain.Reservation {
	upcoming := make(map[int64]*domain.Reservation)

	for _, reservation := range reservations {
		if !reservation.OccupiesTable() {
			continue
		}
		if reservation.StartTime.IsBefore(currentTime) {
			continue
		}

		best, ok := upcoming[reservation.TableID]
		if !ok || reservation.StartTime.IsBefore(best.StartTime) {
			upcoming[reservation.TableID] = reservation
		}
	}

	return upcoming
}
