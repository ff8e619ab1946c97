package detect_conflicts

import (
	"context"
	"sort"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// projectReservations проецирует занимающие столы бронирования в блоки таймлайна
func projectReservations(reservations []*domain.Reservation) []domain.Block {
	blocks := make([]domain.Block, 0, len(reservations))

	for _, reservation := range reservations {
		// Отмененные брони и неявки в таймлайн не попадают
		if !reservation.OccupiesTable() {
			continue
		}

		endTime, err := reservation.EndTime()
		if err != nil {
			// Некорректную бронь пропускаем
			continue
		}

		blocks = append(blocks, domain.Block{
			TableID:   reservation.TableID,
			Kind:      domain.BlockKindReservation,
			SourceID:  reservation.ID,
			Label:     reservation.GuestName,
			StartTime: reservation.StartTime,
			EndTime:   endTime,
			Estimated: false,
		})
	}

	return blocks
}

// projectSessions проецирует активные посадки в блоки с оцененным временем
// окончания. Посадки живут только в "сегодня": для других дат блоков нет.
func projectSessions(
	ctx context.Context,
	sessions []*domain.Session,
	estimator DurationEstimator,
	loc *time.Location,
) []domain.Block {
	blocks := make([]domain.Block, 0, len(sessions))

	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}

		openedAt := session.OpenedAt.In(loc)
		startTime := types.NewTimeString(openedAt)

		estimated := estimator.EstimateMinutes(ctx, session.ActivityID)
		endTime, err := startTime.AddMinutes(estimated)
		if err != nil {
			continue
		}

		blocks = append(blocks, domain.Block{
			TableID:   session.TableID,
			Kind:      domain.BlockKindSession,
			SourceID:  session.ID,
			StartTime: startTime,
			EndTime:   endTime,
			Estimated: true,
		})
	}

	return blocks
}

// findConflicts сравнивает все пары блоков каждого стола и возвращает
// пересечения, отсортированные по столу и времени начала
func findConflicts(blocks []domain.Block) []domain.Conflict {
	byTable := make(map[int64][]domain.Block)
	for _, block := range blocks {
		byTable[block.TableID] = append(byTable[block.TableID], block)
	}

	conflicts := make([]domain.Conflict, 0)

	for tableID, tableBlocks := range byTable {
		sort.SliceStable(tableBlocks, func(i, j int) bool {
			return tableBlocks[i].StartTime.IsBefore(tableBlocks[j].StartTime)
		})

		for i := 0; i < len(tableBlocks); i++ {
			for j := i + 1; j < len(tableBlocks); j++ {
				overlap := domain.OverlapMinutes(
					tableBlocks[i].StartTime, tableBlocks[i].EndTime,
					tableBlocks[j].StartTime, tableBlocks[j].EndTime,
				)
				if overlap <= 0 {
					continue
				}

				conflicts = append(conflicts, domain.Conflict{
					TableID:        tableID,
					First:          tableBlocks[i],
					Second:         tableBlocks[j],
					OverlapMinutes: overlap,
					Severity:       domain.SeverityForOverlap(overlap),
				})
			}
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].TableID != conflicts[j].TableID {
			return conflicts[i].TableID < conflicts[j].TableID
		}
		return conflicts[i].First.StartTime.IsBefore(conflicts[j].First.StartTime)
	})

	return conflicts
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
