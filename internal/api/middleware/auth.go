package middleware

import (
	"context"
	"net/http"

	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/dvalverde/pos-companion/internal/utils/response"
)

type userContextKey string

const userKey = userContextKey("user")

type sessionChecker interface {
	Get(ctx context.Context) (*models.Session, error)
}

// AuthMiddleware gates the device API behind an active session. The token
// itself is only screened locally; the backend re-checks it on every
// outbound call anyway.
type AuthMiddleware struct {
	sessions sessionChecker
}

func NewAuthMiddleware(sessions sessionChecker) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

func (m *AuthMiddleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		session, err := m.sessions.Get(r.Context())
		if err != nil {
			logger.Warn("Rejected request without active session")
			response.Error(w, err)

			return
		}

		ctx := context.WithValue(r.Context(), userKey, &session.User)

		next(w, r.WithContext(ctx))

	}
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)

	return user, ok
}
