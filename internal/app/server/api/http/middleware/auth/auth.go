package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notekeeper/internal/domain/session"
)

type Auth struct {
	api     huma.API
	session session.Servicer
	log     *slog.Logger
}

func New(api huma.API, session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

const bearerPrefix = "Bearer "

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := BearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		userID, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("session validation failed", "error", err)
			a.unauthorized(ctx)
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized"); err != nil {
		a.log.Error("write unauthorized response", "error", err)
	}
}

// BearerToken достает токен из заголовка Authorization.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
