package detect_conflicts

import (
	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	detectConflicts "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_conflicts"
)

// BlockResponse участник конфликта на таймлайне стола
type BlockResponse struct {
	Kind      string `json:"kind"` // "reservation" или "session"
	SourceID  int64  `json:"sourceId"`
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Estimated bool   `json:"estimated"`
}

// ConflictResponse обнаруженный конфликт двух блоков на одном столе
type ConflictResponse struct {
	TableID        int64         `json:"tableId"`
	First          BlockResponse `json:"first"`
	Second         BlockResponse `json:"second"`
	OverlapMinutes int           `json:"overlapMinutes"`
	Severity       string        `json:"severity"`
}

// ConflictListResponse ответ со списком конфликтов площадки за дату
type ConflictListResponse struct {
	VenueID   int64              `json:"venueId"`
	Date      string             `json:"date"`
	Conflicts []ConflictResponse `json:"conflicts"`
	Degraded  bool               `json:"degraded"`
}

func fromDomainBlock(b domain.Block) BlockResponse {
	return BlockResponse{
		Kind:      string(b.Kind),
		SourceID:  b.SourceID,
		Label:     b.Label,
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Estimated: b.Estimated,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *detectConflicts.Response) *ConflictListResponse {
	result := &ConflictListResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date.Format(domain.DateFormat),
		Conflicts: make([]ConflictResponse, 0, len(resp.Conflicts)),
		Degraded:  resp.Degraded,
	}

	for _, c := range resp.Conflicts {
		result.Conflicts = append(result.Conflicts, ConflictResponse{
			TableID:        c.TableID,
			First:          fromDomainBlock(c.First),
			Second:         fromDomainBlock(c.Second),
			OverlapMinutes: c.OverlapMinutes,
			Severity:       string(c.Severity),
		})
	}

	return result
}
