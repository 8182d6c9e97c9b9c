package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

const (
	// HeaderUserID идентификатор вызывающего пользователя, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль вызывающего пользователя
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgAdminOnly     = "требуется роль администратора"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	isAdminKey
	requestIDKey
)

// Auth требует X-User-ID и кладёт его и признак администратора в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		isAdmin := strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), roleAdmin)

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, isAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin пропускает только администраторов. Ставится после Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdmin возвращает true для запросов с ролью admin
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(isAdminKey).(bool)
	return admin
}

// WithUser кладёт пользователя в контекст (для тестов хендлеров)
func WithUser(ctx context.Context, userID int64, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isAdminKey, isAdmin)
}
