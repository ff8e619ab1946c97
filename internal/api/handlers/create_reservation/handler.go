package create_reservation

import (
	"errors"
	"net/http"

	"github.com/avdeev-m/TMS-BookingService/internal/api/handlers"
	"github.com/avdeev-m/TMS-BookingService/internal/api/middleware"
	createReservation "github.com/avdeev-m/TMS-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDateTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound     = "заведение не найдено"
	msgTableNotFound     = "стол не найден"
	msgActivityNotFound  = "активность не найдена"
	msgTableInactive     = "стол недоступен для бронирования"
	msgTableTooSmall     = "стол не вмещает указанное количество гостей"
	msgVenueClosed       = "заведение закрыто в выбранную дату"
	msgOutsideHours      = "интервал выходит за рамки рабочих часов"
	msgInvalidDate       = "дата бронирования в прошлом"
	msgTooLateToBook     = "слишком поздно для бронирования на это время"
	msgTableNotAvailable = "стол уже занят на выбранное время"
	msgInvalidInput      = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Тело запроса: CreateReservationRequest. При конфликте возвращает 409
// с типизированным телом, чтобы клиент перепроверил доступность.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Бронь, созданная сотрудником, помечается его идентификатором
	var createdBy *string
	if staffID, ok := middleware.GetStaffID(r.Context()); ok {
		createdBy = &staffID
	}

	useCaseReq, err := req.ToUseCaseRequest(createdBy)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTableNotAvailable):
			h.logger.Warn("POST /reservations - Table not available: table_id=%d, date=%s, start=%s",
				req.TableID, req.Date, req.StartTime)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:    http.StatusConflict,
				Message: msgTableNotAvailable,
				TableID: req.TableID,
				Date:    req.Date,
				Start:   req.StartTime,
			})

		case errors.Is(err, createReservation.ErrVenueNotFound):
			h.logger.Warn("POST /reservations - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrActivityNotFound):
			h.logger.Warn("POST /reservations - Activity not found: activity_id=%v", req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createReservation.ErrTableInactive):
			h.logger.Warn("POST /reservations - Table inactive: table_id=%d", req.TableID)
			handlers.RespondBadRequest(w, msgTableInactive)

		case errors.Is(err, createReservation.ErrTableTooSmall):
			h.logger.Warn("POST /reservations - Table too small: table_id=%d, party_size=%d",
				req.TableID, req.PartySize)
			handlers.RespondBadRequest(w, msgTableTooSmall)

		case errors.Is(err, createReservation.ErrVenueClosed):
			h.logger.Warn("POST /reservations - Venue closed: venue_id=%d, date=%s", req.VenueID, req.Date)
			handlers.RespondBadRequest(w, msgVenueClosed)

		case errors.Is(err, createReservation.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: venue_id=%d, start=%s",
				req.VenueID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: venue_id=%d, table_id=%d, error=%v",
				req.VenueID, req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Created: id=%d, venue_id=%d, table_id=%d, date=%s, start=%s",
		result.ID, result.VenueID, result.TableID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
