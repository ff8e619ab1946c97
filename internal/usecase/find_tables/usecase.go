package find_tables

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	venueClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
)

// UseCase use case подбора столов под компанию и интервал
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueServiceClient
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
		logger:          logger,
	}
}

// Execute возвращает активные столы с вместимостью >= размера компании и
// без пересекающихся бронирований на интервале. Сбой проверки по одному
// столу деградирует только этот стол до "занят" - частичный результат
// полезнее отказа всего списка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindTables: venue=%d, date=%s, interval=%s-%s, party=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindTables: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := uc.venueClient.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("FindTables: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("FindTables: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Загружаем активные столы
	tables, err := uc.tableRepo.GetActiveByVenue(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("FindTables: failed to get tables for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}

	// 4. Фильтруем по вместимости и свободе интервала
	fitting := make([]RankedTable, 0)

	for _, t := range tables {
		if !t.Fits(req.PartySize) {
			continue
		}

		count, err := uc.reservationRepo.CountOverlapping(
			ctx, t.ID, req.Date, req.StartTime, req.EndTime, nil)
		if err != nil {
			// Деградация на уровне одного стола
			uc.logger.Warn("FindTables: availability check failed for table id=%d, treating as unavailable: %v", t.ID, err)
			continue
		}
		if count > 0 {
			continue
		}

		fitting = append(fitting, RankedTable{
			TableID:    t.ID,
			Label:      t.Label,
			Capacity:   *t.Capacity,
			IsExactFit: t.IsExactFit(req.PartySize),
			IsTightFit: t.IsTightFit(req.PartySize),
		})
	}

	// 5. Ранжирование best-fit: точное совпадение, затем partySize+1,
	// затем по возрастанию вместимости
	sort.SliceStable(fitting, func(i, j int) bool {
		ri, rj := rankOf(fitting[i]), rankOf(fitting[j])
		if ri != rj {
			return ri < rj
		}
		return fitting[i].Capacity < fitting[j].Capacity
	})

	uc.logger.Info("FindTables: %d of %d tables fit for venue=%d", len(fitting), len(tables), req.VenueID)

	return &Response{Tables: fitting}, nil
}

func rankOf(t RankedTable) int {
	switch {
	case t.IsExactFit:
		return 0
	case t.IsTightFit:
		return 1
	default:
		return 2
	}
}
