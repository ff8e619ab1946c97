package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	checkAvailability "github.com/avdeev-m/TMS-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidTableID   = "некорректный ID стола"
	msgMissingDate      = "дата обязательна"
	msgMissingInterval  = "время начала и окончания обязательны"
	msgInvalidDateTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidExcludeID = "некорректный ID исключаемого бронирования"
	msgInvalidInterval  = "некорректный интервал"
	msgTableNotFound    = "стол не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/tables/{tableId}/availability
// Query params: date (required, YYYY-MM-DD), startTime и endTime (required, HH:MM),
// excludeReservationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tableID, err := strconv.ParseInt(vars["tableId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startStr, endStr := query.Get("startTime"), query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Missing interval bounds")
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	// Опциональное исключение собственной брони при редактировании
	var excludeID *int64
	if excludeStr := query.Get("excludeReservationId"); excludeStr != "" {
		parsed, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Invalid exclude ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeID = &parsed
	}

	useCaseReq, err := ToUseCaseRequest(tableID, dateStr, startStr, endStr, excludeID)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrTableNotFound):
			h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/tables/{id}/availability - Invalid interval: table_id=%d, error=%v", tableID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /venues/{id}/tables/{id}/availability - Failed to check availability: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/tables/{id}/availability - Checked: table_id=%d, available=%t, conflicts=%d",
		tableID, result.Available, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
