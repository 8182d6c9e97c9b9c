package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

// HeaderCallbackToken общий секрет платёжного колбэка
const HeaderCallbackToken = "X-Callback-Token"

const msgInvalidCallbackToken = "некорректный токен колбэка"

// CallbackToken сверяет X-Callback-Token с настроенным секретом.
// Пустой секрет отключает проверку.
func CallbackToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get(HeaderCallbackToken)
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					handlers.RespondUnauthorized(w, msgInvalidCallbackToken)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
