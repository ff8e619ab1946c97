package create_reservation

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID         int64            // ID заведения
	TableID         int64            // ID стола
	GuestName       string           // Имя гостя
	GuestPhone      *string          // Телефон гостя (опционально)
	PartySize       int              // Размер компании
	Date            time.Time        // Дата посадки (без времени)
	StartTime       types.TimeString // Время начала (например, "18:00")
	DurationMinutes int              // Длительность (0 - длительность по умолчанию)
	ActivityID      *int64           // Связанная активность (опционально)
	Source          string           // Канал брони: "phone", "walk_in", "online"
	Notes           *string          // Заметки (опционально)
	CreatedBy       *string          // Сотрудник, создавший бронь
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	VenueID         int64            // ID заведения
	TableID         int64            // ID стола
	GuestName       string           // Имя гостя
	GuestPhone      *string          // Телефон гостя
	PartySize       int              // Размер компании
	Date            time.Time        // Дата посадки
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	ActivityID      *int64           // Связанная активность
	Source          string           // Канал брони
	Notes           *string          // Заметки
	CreatedBy       *string          // Сотрудник, создавший бронь

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
