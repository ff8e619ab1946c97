package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrVenueNotFound возвращается, когда заведение не найдено
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrTableNotFound возвращается, когда стол не найден или не принадлежит заведению
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrTableInactive возвращается, когда стол выведен из оборота
	ErrTableInactive = errors.New("create_reservation: table is not active")

	// ErrTableTooSmall возвращается, когда стол не вмещает компанию
	ErrTableTooSmall = errors.New("create_reservation: table does not fit the party")

	// ErrActivityNotFound возвращается, когда указана несуществующая активность
	ErrActivityNotFound = errors.New("create_reservation: activity not found")

	// ErrVenueClosed возвращается, когда заведение закрыто в указанную дату
	ErrVenueClosed = errors.New("create_reservation: venue is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_reservation: interval is outside working hours")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrTooLateToBook возвращается, когда нарушено минимальное уведомление о брони
	ErrTooLateToBook = errors.New("create_reservation: too late to book this interval")

	// ErrTableNotAvailable возвращается, когда стол уже занят на пересекающийся интервал
	ErrTableNotAvailable = errors.New("create_reservation: table is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
