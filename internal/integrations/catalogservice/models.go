package catalogservice

// Activity модель активности из CatalogService (дегустация, мастер-класс,
// банкетная программа). Для движка важна только ожидаемая длительность.
type Activity struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ExpectedMinutes int    `json:"expected_minutes"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
