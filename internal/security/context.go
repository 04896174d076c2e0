package security

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/pkg/models"
)

type sessionKey struct{}

func withSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session of an authenticated web call.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*models.Session)
	return session, ok
}
