package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/api/http/middleware/auth"
	"notekeeper/internal/domain/session"
	"notekeeper/internal/domain/user"
)

const (
	statusOk    = "Ok"
	statusError = "Error"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		msg := err.Error()
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			msg = "The email address is already in use by another account."
		case errors.Is(err, user.ErrInvalidInput):
		default:
			h.log.Error("register failed", "error", err)
			msg = "Registration failed, try again later."
		}

		return &registerOutput{
			Body: RegisterResponse{Status: statusError, Error: msg},
		}, nil
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: statusOk},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Body: LoginResponse{
				Status: statusError,
				Error:  "Invalid credentials",
			},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session failed", "user_id", u.ID, "error", err)
		return &loginOutput{
			Body: LoginResponse{
				Status: statusError,
				Error:  "Could not start session, try again later.",
			},
		}, nil
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:  token,
			Email:  u.Email,
			Status: statusOk,
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	token, ok := auth.BearerToken(input.Authorization)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("revoke session failed", "error", err)
		return nil, huma.Error500InternalServerError("Could not end session")
	}

	return &logoutOutput{Body: StatusResponse{Status: statusOk}}, nil
}
