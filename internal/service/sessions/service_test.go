package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	sessionRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/session"
	tableRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/table"
	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

// fakeSessionRepo хранит сессии в памяти и фиксирует закрытия
type fakeSessionRepo struct {
	sessions []*domain.Session
	nextID   int64
	err      error
	closedAt *time.Time
}

func (f *fakeSessionRepo) Open(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	s.ID = f.nextID
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeSessionRepo) Close(_ context.Context, id int64, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	for _, s := range f.sessions {
		if s.ID != id {
			continue
		}
		if s.ClosedAt != nil {
			return sessionRepo.ErrSessionAlreadyClosed
		}
		s.ClosedAt = &at
		f.closedAt = &at
		return nil
	}
	return sessionRepo.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetActiveByVenue(_ context.Context, venueID int64) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	active := make([]*domain.Session, 0)
	for _, s := range f.sessions {
		if s.VenueID == venueID && s.ClosedAt == nil {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeTableRepo struct {
	table *domain.Table
	err   error
}

func (f *fakeTableRepo) GetByID(_ context.Context, _ int64) (*domain.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

var testNow = time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC)

func activeTable() *domain.Table {
	capacity := 6
	return &domain.Table{
		ID:       10,
		VenueID:  1,
		Capacity: &capacity,
		IsActive: true,
	}
}

func newTestService(sessions *fakeSessionRepo, tables *fakeTableRepo) *Service {
	svc := NewService(sessions, tables, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func TestOpen_Success(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	resp, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{
		TableID:   10,
		PartySize: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.TableID)
	assert.True(t, resp.Active)
	assert.Equal(t, testNow, resp.OpenedAt)
}

// Один стол - одна живая посадка
func TestOpen_TableOccupied(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	_, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 2})
	assert.ErrorIs(t, err, ErrTableOccupied)
}

func TestOpen_ClosedSessionDoesNotBlockTable(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	first, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), first.ID)
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 2})
	assert.NoError(t, err)
}

func TestOpen_TableChecks(t *testing.T) {
	t.Run("table not found", func(t *testing.T) {
		svc := newTestService(&fakeSessionRepo{}, &fakeTableRepo{err: tableRepo.ErrTableNotFound})

		_, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 99, PartySize: 4})
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("table from another venue", func(t *testing.T) {
		foreign := activeTable()
		foreign.VenueID = 2
		svc := newTestService(&fakeSessionRepo{}, &fakeTableRepo{table: foreign})

		_, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("inactive table", func(t *testing.T) {
		inactive := activeTable()
		inactive.IsActive = false
		svc := newTestService(&fakeSessionRepo{}, &fakeTableRepo{table: inactive})

		_, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
		assert.ErrorIs(t, err, ErrTableInactive)
	})
}

func TestOpen_InvalidPartySize(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{}, &fakeTableRepo{table: activeTable()})

	_, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Open(context.Background(), 1, &models.OpenSessionRequest{
		TableID:   10,
		PartySize: domain.MaxPartySize + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClose_Success(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	opened, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
	require.NoError(t, err)

	resp, err := svc.Close(context.Background(), opened.ID)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	require.NotNil(t, resp.ClosedAt)
	assert.Equal(t, testNow, *resp.ClosedAt)
}

func TestClose_AlreadyClosed(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	opened, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), opened.ID)
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), opened.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
}

func TestClose_NotFound(t *testing.T) {
	svc := newTestService(&fakeSessionRepo{}, &fakeTableRepo{table: activeTable()})

	_, err := svc.Close(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetActiveSessions(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	opened, err := svc.Open(context.Background(), 1, &models.OpenSessionRequest{TableID: 10, PartySize: 4})
	require.NoError(t, err)

	resp, err := svc.GetActiveSessions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, opened.ID, resp.Sessions[0].ID)

	// Закрытые сессии в список живых посадок не попадают
	_, err = svc.Close(context.Background(), opened.ID)
	require.NoError(t, err)

	resp, err = svc.GetActiveSessions(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Sessions)
}

func TestGetActiveSessions_RepositoryError(t *testing.T) {
	sessions := &fakeSessionRepo{err: errors.New("connection refused")}
	svc := newTestService(sessions, &fakeTableRepo{table: activeTable()})

	_, err := svc.GetActiveSessions(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
