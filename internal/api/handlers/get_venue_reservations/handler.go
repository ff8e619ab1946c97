package get_venue_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations"
	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgInvalidTableID = "некорректный ID стола"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter  = "некорректные параметры фильтра"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/reservations
// Query params (все опциональные): tableId, startDate, endDate (YYYY-MM-DD),
// status, includeTerminal (true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/reservations - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()
	req := &models.GetVenueReservationsRequest{VenueID: venueID}

	if tableStr := query.Get("tableId"); tableStr != "" {
		tableID, err := strconv.ParseInt(tableStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/reservations - Invalid table ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTableID)
			return
		}
		req.TableID = &tableID
	}

	if startStr := query.Get("startDate"); startStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endStr := query.Get("endDate"); endStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := query.Get("includeTerminal"); includeStr != "" {
		req.IncludeTerminal = includeStr == "true"
	}

	result, err := h.service.GetVenueReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/reservations - Invalid filter: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /venues/{id}/reservations - Failed to get reservations: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/reservations - Fetched: venue_id=%d, count=%d",
		venueID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
