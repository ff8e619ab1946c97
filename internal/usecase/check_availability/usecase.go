package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	tableRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/table"
)

// UseCase use case проверки доступности стола на интервал
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		logger:          logger,
	}
}

// Execute выполняет проверку доступности.
// Авторитетная проверка - серверный запрос с предикатом пересечения в БД.
// При его сбое выполняется независимый локальный пересчёт тем же предикатом
// (domain.Overlaps): два пути кода, одна семантика.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: table=%d, date=%s, interval=%s-%s",
		req.TableID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование стола
	if _, err := uc.tableRepo.GetByID(ctx, req.TableID); err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("CheckAvailability: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}

	// 3. Авторитетная серверная проверка
	count, err := uc.reservationRepo.CountOverlapping(
		ctx, req.TableID, req.Date, req.StartTime, req.EndTime, req.ExcludeReservationID)
	if err != nil {
		// 3a. Локальный пересчёт тем же предикатом
		uc.logger.Warn("CheckAvailability: server-side check failed, falling back to local recomputation: %v", err)
		return uc.checkLocally(ctx, req)
	}

	if count == 0 {
		return &Response{Available: true, Conflicts: []Conflict{}}, nil
	}

	// 4. Есть пересечения - собираем детали конфликтов
	conflicts, err := uc.listConflicts(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{Available: false, Conflicts: conflicts}, nil
}

// checkLocally загружает бронирования стола и применяет предикат пересечения
// локально. Семантика идентична серверной проверке.
func (uc *UseCase) checkLocally(ctx context.Context, req *Request) (*Response, error) {
	conflicts, err := uc.listConflicts(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

func (uc *UseCase) listConflicts(ctx context.Context, req *Request) ([]Conflict, error) {
	reservations, err := uc.reservationRepo.GetByTableAndDate(ctx, req.TableID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations for table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	conflicts := make([]Conflict, 0)

	for _, res := range reservations {
		if !res.OccupiesTable() {
			continue
		}
		if req.ExcludeReservationID != nil && res.ID == *req.ExcludeReservationID {
			continue
		}

		resEnd, err := res.EndTime()
		if err != nil {
			// Бронирование с некорректным временем пропускаем
			uc.logger.Warn("CheckAvailability: reservation id=%d has invalid time, skipping: %v", res.ID, err)
			continue
		}

		if domain.Overlaps(res.StartTime, resEnd, req.StartTime, req.EndTime) {
			conflicts = append(conflicts, Conflict{
				ReservationID:  res.ID,
				GuestName:      res.GuestName,
				StartTime:      res.StartTime,
				EndTime:        resEnd,
				OverlapMinutes: domain.OverlapMinutes(res.StartTime, resEnd, req.StartTime, req.EndTime),
			})
		}
	}

	return conflicts, nil
}
