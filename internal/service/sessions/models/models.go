package models

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

// Request модели

// OpenSessionRequest запрос на открытие walk-in сессии
type OpenSessionRequest struct {
	TableID    int64  `json:"tableId"`
	PartySize  int    `json:"partySize"`
	ActivityID *int64 `json:"activityId,omitempty"`
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID         int64      `json:"id"`
	VenueID    int64      `json:"venueId"`
	TableID    int64      `json:"tableId"`
	PartySize  int        `json:"partySize"`
	ActivityID *int64     `json:"activityId,omitempty"`
	OpenedAt   time.Time  `json:"openedAt"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
	Active     bool       `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком активных сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:         s.ID,
		VenueID:    s.VenueID,
		TableID:    s.TableID,
		PartySize:  s.PartySize,
		ActivityID: s.ActivityID,
		OpenedAt:   s.OpenedAt,
		ClosedAt:   s.ClosedAt,
		Active:     s.IsActive(),

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	result := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if converted := FromDomainSession(s); converted != nil {
			result.Sessions = append(result.Sessions, *converted)
		}
	}

	return result
}
