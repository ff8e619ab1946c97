package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionAlreadyClosed возвращается при закрытии уже закрытой сессии
	ErrSessionAlreadyClosed = errors.New("session already closed")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrTableInactive возвращается при посадке за выведенный из оборота стол
	ErrTableInactive = errors.New("table is inactive")

	// ErrTableOccupied возвращается, когда на столе уже есть активная сессия
	ErrTableOccupied = errors.New("table already has an active session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
