package find_tables

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

type fakeReservationRepo struct {
	// occupied содержит ID столов, занятых на проверяемом интервале
	occupied map[int64]bool
	// failing содержит ID столов, для которых проверка падает
	failing map[int64]bool
}

func (f *fakeReservationRepo) CountOverlapping(_ context.Context, tableID int64, _ time.Time, _, _ types.TimeString, _ *int64) (int, error) {
	if f.failing[tableID] {
		return 0, errors.New("availability sub-check failed")
	}
	if f.occupied[tableID] {
		return 1, nil
	}
	return 0, nil
}

type fakeTableRepo struct {
	tables []*domain.Table
	err    error
}

func (f *fakeTableRepo) GetActiveByVenue(_ context.Context, _ int64) ([]*domain.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tables, nil
}

type fakeVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func tableWithCapacity(id int64, capacity int) *domain.Table {
	return &domain.Table{ID: id, Label: "T", Capacity: &capacity, IsActive: true}
}

func baseRequest() *Request {
	return &Request{
		VenueID:   1,
		Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
		EndTime:   "20:00",
		PartySize: 4,
	}
}

func TestExecute_BestFitOrdering(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{
			tableWithCapacity(1, 6),
			tableWithCapacity(2, 4),
			tableWithCapacity(3, 5),
			tableWithCapacity(4, 8),
		}},
		&fakeVenueClient{venue: &venueservice.Venue{ID: 1}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, resp.Tables, 4)

	// Для компании из 4: вместимость 4 раньше 5, 5 раньше 6
	assert.Equal(t, int64(2), resp.Tables[0].TableID)
	assert.True(t, resp.Tables[0].IsExactFit)
	assert.Equal(t, int64(3), resp.Tables[1].TableID)
	assert.True(t, resp.Tables[1].IsTightFit)
	assert.Equal(t, int64(1), resp.Tables[2].TableID)
	assert.Equal(t, int64(4), resp.Tables[3].TableID)
}

func TestExecute_ExcludesSmallAndOccupiedTables(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{occupied: map[int64]bool{2: true}},
		&fakeTableRepo{tables: []*domain.Table{
			tableWithCapacity(1, 2), // мал для компании из 4
			tableWithCapacity(2, 4), // занят
			tableWithCapacity(3, 6),
		}},
		&fakeVenueClient{venue: &venueservice.Venue{ID: 1}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, resp.Tables, 1)
	assert.Equal(t, int64(3), resp.Tables[0].TableID)
}

func TestExecute_FailedSubCheckDegradesSingleTable(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{failing: map[int64]bool{2: true}},
		&fakeTableRepo{tables: []*domain.Table{
			tableWithCapacity(2, 4),
			tableWithCapacity(3, 6),
		}},
		&fakeVenueClient{venue: &venueservice.Venue{ID: 1}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	// Стол с упавшей проверкой деградирует до "занят", остальные отдаются
	require.Len(t, resp.Tables, 1)
	assert.Equal(t, int64(3), resp.Tables[0].TableID)
}

func TestExecute_ReadPathIdempotent(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{tables: []*domain.Table{
			tableWithCapacity(1, 4),
			tableWithCapacity(2, 5),
		}},
		&fakeVenueClient{venue: &venueservice.Venue{ID: 1}},
		nopLogger{},
	)

	first, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeTableRepo{},
		&fakeVenueClient{err: venueservice.ErrVenueNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
