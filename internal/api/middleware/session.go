package middleware

import (
	"context"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
)

// HeaderSessionID заголовок, идентифицирующий сессию бронирования
const HeaderSessionID = "X-Session-ID"

type sessionContextKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Session требует заголовок X-Session-ID и кладет его значение в контекст
func Session(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(HeaderSessionID)
			if sessionID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderSessionID)
				handlers.RespondBadRequest(w, "заголовок X-Session-ID обязателен")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID извлекает ID сессии из контекста запроса
func SessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionContextKey{}).(string)
	return sessionID
}
