package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identity"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"

	// accessTokenQuery токен в query нужен для WebSocket: браузер не передает заголовки при апгрейде
	accessTokenQuery = "access_token"

	msgMissingToken = "отсутствует токен доступа"
	msgInvalidToken = "недействительный токен доступа"
	msgExpiredToken = "срок действия токена истек"
	msgAdminOnly    = "доступно только администратору"
)

// TokenVerifier интерфейс проверки токена доступа
type TokenVerifier interface {
	Verify(token string) (*identity.Principal, error)
}

// RoleResolver возвращает роль, сохраненную в профиле пользователя.
// found равен false, если профиля еще нет
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (role domain.Role, found bool, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет bearer токен и кладет пользователя в контекст запроса.
// Роль из профиля главнее роли из токена: claim используется, только пока профиля нет.
// roles может быть nil, тогда роль берется из токена
func Auth(verifier TokenVerifier, roles RoleResolver, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("Auth: %s %s - token rejected: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, identity.ErrExpiredToken) {
					handlers.RespondUnauthorized(w, msgExpiredToken)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if roles != nil {
				stored, found, err := roles.ResolveRole(r.Context(), principal.UserID)
				if err != nil {
					logger.Error("Auth: %s %s - failed to resolve role for user=%s: %v", r.Method, r.URL.Path, principal.UserID, err)
					handlers.RespondServiceUnavailable(w)
					return
				}
				if found {
					principal.Role = stored
				}
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), *principal)))
		})
	}
}

// RequireAdmin пропускает только администраторов; должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if !p.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get(authorizationHeader); header != "" {
		fields := strings.Fields(header)
		if len(fields) == 2 && strings.EqualFold(fields[0], bearerScheme) {
			return fields[1]
		}
		return ""
	}
	return r.URL.Query().Get(accessTokenQuery)
}
