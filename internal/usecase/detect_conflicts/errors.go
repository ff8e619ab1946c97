package detect_conflicts

import "errors"

var (
	// ErrInvalidRequest невалидный запрос
	ErrInvalidRequest = errors.New("detect_conflicts: invalid request")

	// ErrVenueNotFound заведение не найдено
	ErrVenueNotFound = errors.New("detect_conflicts: venue not found")

	// ErrVenueServiceUnavailable сервис заведений недоступен
	ErrVenueServiceUnavailable = errors.New("detect_conflicts: venue service unavailable")

	// ErrStorageUnavailable хранилище недоступно
	ErrStorageUnavailable = errors.New("detect_conflicts: storage unavailable")
)
