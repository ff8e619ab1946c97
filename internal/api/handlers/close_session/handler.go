package close_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgSessionNotFound  = "сессия не найдена"
	msgAlreadyClosed    = "сессия уже закрыта"
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

// Handle PATCH /api/v1/sessions/{sessionId}/close
// Гости ушли - стол освободился
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/close - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.Close(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/close - Session not found: id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrSessionAlreadyClosed):
			h.logger.Warn("PATCH /sessions/{id}/close - Already closed: id=%d", sessionID)
			handlers.RespondConflict(w, msgAlreadyClosed)

		default:
			h.logger.Error("PATCH /sessions/{id}/close - Failed to close session: id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/close - Closed: id=%d, table_id=%d", sessionID, result.TableID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
