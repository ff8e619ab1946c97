package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	sessionRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/session"
	tableRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/table"
	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

// Service сервис для работы с walk-in сессиями (живыми посадками)
type Service struct {
	sessionRepo  SessionRepository
	tableRepo    TableRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, tableRepo TableRepository, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		tableRepo:    tableRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open открывает сессию на столе для гостей без брони.
// У сессии нет планового окончания - она длится до явного закрытия.
func (s *Service) Open(ctx context.Context, venueID int64, req *models.OpenSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Open: opening session for venue=%d, table=%d", venueID, req.TableID)

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// Проверяем стол
	table, err := s.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Open: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		s.logger.Error("Open: repository error for table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	if table.VenueID != venueID {
		s.logger.Warn("Open: table id=%d belongs to venue=%d, not venue=%d", req.TableID, table.VenueID, venueID)
		return nil, ErrTableNotFound
	}

	if !table.IsActive {
		s.logger.Warn("Open: table id=%d is inactive", req.TableID)
		return nil, ErrTableInactive
	}

	// На одном столе может идти только одна живая посадка
	active, err := s.sessionRepo.GetActiveByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("Open: failed to list active sessions for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}
	for _, existing := range active {
		if existing.TableID == req.TableID {
			s.logger.Warn("Open: table id=%d already has active session id=%d", req.TableID, existing.ID)
			return nil, ErrTableOccupied
		}
	}

	session := &domain.Session{
		VenueID:    venueID,
		TableID:    req.TableID,
		PartySize:  req.PartySize,
		ActivityID: req.ActivityID,
		OpenedAt:   s.timeProvider.Now(),
	}

	created, err := s.sessionRepo.Open(ctx, session)
	if err != nil {
		s.logger.Error("Open: failed to open session for table id=%d: %v", req.TableID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Open: successfully opened session id=%d for table=%d", created.ID, created.TableID)
	return models.FromDomainSession(created), nil
}

// Close закрывает активную сессию - гости ушли, стол освободился
func (s *Service) Close(ctx context.Context, sessionID int64) (*models.SessionResponse, error) {
	s.logger.Info("Close: closing session id=%d", sessionID)

	err := s.sessionRepo.Close(ctx, sessionID, s.timeProvider.Now())
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			s.logger.Warn("Close: session id=%d not found", sessionID)
			return nil, ErrSessionNotFound

		case errors.Is(err, sessionRepo.ErrSessionAlreadyClosed):
			s.logger.Warn("Close: session id=%d already closed", sessionID)
			return nil, ErrSessionAlreadyClosed

		default:
			s.logger.Error("Close: repository error for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
		}
	}

	closed, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		s.logger.Error("Close: failed to re-fetch session id=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Close: successfully closed session id=%d", sessionID)
	return models.FromDomainSession(closed), nil
}

// GetActiveSessions возвращает все живые посадки площадки
func (s *Service) GetActiveSessions(ctx context.Context, venueID int64) (*models.SessionListResponse, error) {
	s.logger.Info("GetActiveSessions: fetching active sessions for venue=%d", venueID)

	if venueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.GetActiveByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("GetActiveSessions: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetActiveSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetActiveSessions: successfully fetched %d sessions for venue=%d", len(sessions), venueID)
	return models.FromDomainSessionList(sessions), nil
}
