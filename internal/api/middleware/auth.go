package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"

	headerUserID     = "X-User-ID"
	headerAdminToken = "X-Admin-Token"
)

const (
	msgMissingUserID = "отсутствует или некорректный заголовок X-User-ID"
	msgAdminOnly     = "требуется токен администратора"
)

// Auth требует заголовок X-User-ID и кладёт ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// AdminAuth пропускает только запросы с верным X-Admin-Token.
// С пустым токеном все административные запросы отклоняются
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(headerAdminToken)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
