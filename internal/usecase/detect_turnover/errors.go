package detect_turnover

import "errors"

var (
	// ErrInvalidRequest невалидный запрос
	ErrInvalidRequest = errors.New("detect_turnover: invalid request")

	// ErrVenueNotFound заведение не найдено
	ErrVenueNotFound = errors.New("detect_turnover: venue not found")

	// ErrVenueServiceUnavailable сервис заведений недоступен
	ErrVenueServiceUnavailable = errors.New("detect_turnover: venue service unavailable")

	// ErrStorageUnavailable хранилище недоступно
	ErrStorageUnavailable = errors.New("detect_turnover: storage unavailable")
)
