package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	generateSlots "github.com/avdeev-m/TMS-BookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidVenueID   = "некорректный ID заведения"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPartySize = "размер компании обязателен"
	msgInvalidPartySize = "некорректный размер компании"
	msgInvalidDuration  = "некорректная длительность посадки"
	msgInvalidInterval  = "некорректный шаг сетки слотов"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgVenueNotFound    = "заведение не найдено"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/available-slots
// Query params: date (required), partySize (required),
// duration и interval в минутах (optional, по умолчанию из настроек)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	partySizeStr := query.Get("partySize")
	if partySizeStr == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing party size")
		handlers.RespondBadRequest(w, msgMissingPartySize)
		return
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	duration := 0
	if durationStr := query.Get("duration"); durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	interval := 0
	if intervalStr := query.Get("interval"); intervalStr != "" {
		interval, err = strconv.Atoi(intervalStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(venueID, dateStr, partySize, duration, interval)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/available-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, generateSlots.ErrInvalidRequest):
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid request: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /venues/{id}/available-slots - Failed to generate slots: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/available-slots - Generated %d slot(s): venue_id=%d, date=%s",
		len(result.Slots), venueID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
