package generate_slots

import "errors"

var (
	// ErrInvalidRequest невалидный запрос
	ErrInvalidRequest = errors.New("generate_slots: invalid request")

	// ErrVenueNotFound заведение не найдено
	ErrVenueNotFound = errors.New("generate_slots: venue not found")

	// ErrVenueServiceUnavailable сервис заведений недоступен
	ErrVenueServiceUnavailable = errors.New("generate_slots: venue service unavailable")

	// ErrStorageUnavailable хранилище недоступно
	ErrStorageUnavailable = errors.New("generate_slots: storage unavailable")
)
