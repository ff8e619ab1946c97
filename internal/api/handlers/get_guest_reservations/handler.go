package get_guest_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations"
)

const (
	msgMissingPhone = "телефон гостя обязателен"
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

// Handle GET /api/v1/guests/{guestPhone}/reservations
// История бронирований гостя по номеру телефона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	phone := vars["guestPhone"]
	if phone == "" {
		h.logger.Warn("GET /guests/{phone}/reservations - Missing guest phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.service.GetGuestReservations(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /guests/{phone}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingPhone)

		default:
			h.logger.Error("GET /guests/{phone}/reservations - Failed to get reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{phone}/reservations - Fetched: count=%d", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
