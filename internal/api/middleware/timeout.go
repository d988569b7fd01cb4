package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const msgRequestTimeout = `{"error":"превышено время обработки запроса"}`

// Timeout ограничивает время обработки запроса, по истечении отвечает 503
// Подключается к подроутерам с обычными запросами; ручная генерация слотов живёт без него
func Timeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, msgRequestTimeout)
	}
}
