package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// HeaderStaffID заголовок, которым фронт персонала передает идентификатор сотрудника
const HeaderStaffID = "X-Staff-ID"

// Auth проверяет наличие заголовка X-Staff-ID и кладет его в контекст.
// Защищенные маршруты меняют состояние броней и требуют идентификации сотрудника.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID := r.Header.Get(HeaderStaffID)
		if staffID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    http.StatusUnauthorized,
				"message": "отсутствует заголовок " + HeaderStaffID,
			})
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает идентификатор сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(staffIDKey).(string)
	return staffID, ok
}
