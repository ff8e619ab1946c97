package detect_turnover

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	detectTurnover "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_turnover"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgVenueNotFound  = "заведение не найдено"
)

type Handler struct {
	useCase DetectTurnoverUseCase
	logger  Logger
}

func NewHandler(useCase DetectTurnoverUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/turnover-risks
// Отчет строится от текущего момента, параметров нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/turnover-risks - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &detectTurnover.Request{VenueID: venueID})
	if err != nil {
		switch {
		case errors.Is(err, detectTurnover.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/turnover-risks - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, detectTurnover.ErrInvalidRequest):
			h.logger.Warn("GET /venues/{id}/turnover-risks - Invalid request: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/turnover-risks - Failed to detect risks: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/turnover-risks - Detected: venue_id=%d, risks=%d", venueID, len(result.Risks))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
