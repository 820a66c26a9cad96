package note

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/api/http/middleware/auth"
	"notekeeper/internal/domain/note"
)

type Handler struct {
	service    note.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service note.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	notes, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &listOutput{Body: ListResponse{Notes: notes}}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &findOutput{Body: *n}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &output{Body: response{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Update(ctx, userID, input.ID, input.Body); err != nil {
		return nil, toHTTPError(err)
	}

	return &output{Body: response{ID: input.ID, Status: "Ok"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, toHTTPError(err)
	}

	return &output{Body: response{ID: input.ID, Status: "Ok"}}, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, note.ErrNotFound):
		return huma.Error404NotFound(note.ErrNotFound.Error())
	case errors.Is(err, note.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
