package detect_conflicts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	detectConflicts "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_conflicts"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound  = "заведение не найдено"
)

type Handler struct {
	useCase DetectConflictsUseCase
	logger  Logger
}

func NewHandler(useCase DetectConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/conflicts
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/conflicts - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/conflicts - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/conflicts - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &detectConflicts.Request{
		VenueID: venueID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, detectConflicts.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/conflicts - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, detectConflicts.ErrInvalidRequest):
			h.logger.Warn("GET /venues/{id}/conflicts - Invalid request: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/conflicts - Failed to detect conflicts: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/conflicts - Detected: venue_id=%d, date=%s, conflicts=%d, degraded=%t",
		venueID, dateStr, len(result.Conflicts), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
