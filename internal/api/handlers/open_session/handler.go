package open_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions"
	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgInvalidBody    = "некорректное тело запроса"
	msgTableNotFound  = "стол не найден"
	msgTableInactive  = "стол недоступен для посадки"
	msgTableOccupied  = "на столе уже идет посадка"
	msgInvalidInput   = "некорректные параметры посадки"
)

type Handler struct {
	service SessionsService
	logger  Logger
}

func NewHandler(service SessionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/sessions
// Открывает живую посадку для гостей без брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/sessions - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req models.OpenSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Open(r.Context(), venueID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrTableNotFound):
			h.logger.Warn("POST /venues/{id}/sessions - Table not found: venue_id=%d, table_id=%d",
				venueID, req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, sessions.ErrTableInactive):
			h.logger.Warn("POST /venues/{id}/sessions - Table inactive: table_id=%d", req.TableID)
			handlers.RespondBadRequest(w, msgTableInactive)

		case errors.Is(err, sessions.ErrTableOccupied):
			h.logger.Warn("POST /venues/{id}/sessions - Table occupied: table_id=%d", req.TableID)
			handlers.RespondConflict(w, msgTableOccupied)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /venues/{id}/sessions - Failed to open session: venue_id=%d, table_id=%d, error=%v",
				venueID, req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/sessions - Opened: id=%d, venue_id=%d, table_id=%d",
		result.ID, venueID, result.TableID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
