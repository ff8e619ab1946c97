package find_tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	findTables "github.com/avdeev-m/TMS-BookingService/internal/usecase/find_tables"
)

const (
	msgInvalidVenueID   = "некорректный ID заведения"
	msgMissingDate      = "дата обязательна"
	msgMissingInterval  = "время начала и окончания обязательны"
	msgMissingPartySize = "размер компании обязателен"
	msgInvalidPartySize = "некорректный размер компании"
	msgInvalidDateTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgVenueNotFound    = "заведение не найдено"
)

type Handler struct {
	useCase FindTablesUseCase
	logger  Logger
}

func NewHandler(useCase FindTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/fitting-tables
// Query params: date (required), startTime и endTime (required), partySize (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startStr, endStr := query.Get("startTime"), query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Missing interval bounds")
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	partySizeStr := query.Get("partySize")
	if partySizeStr == "" {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Missing party size")
		handlers.RespondBadRequest(w, msgMissingPartySize)
		return
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	useCaseReq, err := ToUseCaseRequest(venueID, dateStr, startStr, endStr, partySize)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/fitting-tables - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findTables.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/fitting-tables - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, findTables.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/fitting-tables - Invalid request: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /venues/{id}/fitting-tables - Failed to find tables: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/fitting-tables - Found %d table(s): venue_id=%d, party_size=%d",
		len(result.Tables), venueID, partySize)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
