package resource

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

type Handler struct {
	service    resource.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service resource.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

// SetupRoutes registers the CRUD operations of every served resource plus
// the discovery endpoint. Handlers close over the resource name; the routes
// themselves are fixed at startup.
func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.definitionsOp(), h.definitions)

	for _, def := range h.service.Definitions() {
		huma.Register(api, h.listOp(def), h.list(def.Name))
		huma.Register(api, h.createOp(def), h.create(def.Name))
		huma.Register(api, h.findOp(def), h.find(def.Name))
		huma.Register(api, h.updateOp(def), h.update(def.Name))
		huma.Register(api, h.deleteOp(def), h.delete(def.Name))
	}
}

func (h *Handler) definitions(_ context.Context, _ *struct{}) (*definitionsOutput, error) {
	return &definitionsOutput{
		Body: h.service.Definitions(),
	}, nil
}

func (h *Handler) list(res string) func(context.Context, *listInput) (*listOutput, error) {
	return func(ctx context.Context, input *listInput) (*listOutput, error) {
		records, err := h.service.List(ctx, res, resource.ListQuery{
			Filter: input.Q,
			Sort:   input.Sort,
		})
		if err != nil {
			return nil, h.mapError(err)
		}

		return &listOutput{
			Body: records,
		}, nil
	}
}

func (h *Handler) create(res string) func(context.Context, *createInput) (*recordOutput, error) {
	return func(ctx context.Context, input *createInput) (*recordOutput, error) {
		rec, err := h.service.Create(ctx, res, input.Body)
		if err != nil {
			return nil, h.mapError(err)
		}

		return &recordOutput{
			Body: rec,
		}, nil
	}
}

func (h *Handler) find(res string) func(context.Context, *findInput) (*recordOutput, error) {
	return func(ctx context.Context, input *findInput) (*recordOutput, error) {
		rec, err := h.service.Find(ctx, res, input.ID)
		if err != nil {
			return nil, h.mapError(err)
		}

		return &recordOutput{
			Body: rec,
		}, nil
	}
}

func (h *Handler) update(res string) func(context.Context, *updateInput) (*recordOutput, error) {
	return func(ctx context.Context, input *updateInput) (*recordOutput, error) {
		rec, err := h.service.Update(ctx, res, input.ID, input.Body)
		if err != nil {
			return nil, h.mapError(err)
		}

		return &recordOutput{
			Body: rec,
		}, nil
	}
}

func (h *Handler) delete(res string) func(context.Context, *deleteInput) (*statusOutput, error) {
	return func(ctx context.Context, input *deleteInput) (*statusOutput, error) {
		if err := h.service.Delete(ctx, res, input.ID); err != nil {
			return nil, h.mapError(err)
		}

		return &statusOutput{
			Body: statusResponse{Status: "ok"},
		}, nil
	}
}

// mapError translates store errors into transport errors. Validation
// failures and misses keep their message; anything else is logged and
// reported as a bare 500 so internals never reach the client.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, resource.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, resource.ErrNotFound), errors.Is(err, resource.ErrUnknownResource):
		return huma.Error404NotFound(err.Error())
	default:
		h.log.Error("unhandled store error", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
