package resource

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"stockroom/internal/domain/resource"
)

func (h *Handler) listOp(def resource.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-list",
		Method:      http.MethodGet,
		Path:        "/api/" + def.Name,
		Summary:     "List " + def.Name,
		Description: "Returns the " + def.Name + " collection in insertion order. Supports ?q= substring filtering and ?sort= ordering.",
		Tags:        []string{def.Name},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp(def resource.Definition) huma.Operation {
	return huma.Operation{
		OperationID:   def.Name + "-create",
		Method:        http.MethodPost,
		Path:          "/api/" + def.Name,
		Summary:       "Create a " + def.Title,
		Description:   "Stores a new record under a server-assigned id and returns it.",
		Tags:          []string{def.Name},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp(def resource.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-find",
		Method:      http.MethodGet,
		Path:        "/api/" + def.Name + "/{id}",
		Summary:     "Get a " + def.Title,
		Tags:        []string{def.Name},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp(def resource.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-update",
		Method:      http.MethodPut,
		Path:        "/api/" + def.Name + "/{id}",
		Summary:     "Update a " + def.Title,
		Description: "Merges the supplied fields into the record and returns the result. Omitted fields keep their values.",
		Tags:        []string{def.Name},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp(def resource.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-delete",
		Method:      http.MethodDelete,
		Path:        "/api/" + def.Name + "/{id}",
		Summary:     "Delete a " + def.Title,
		Tags:        []string{def.Name},
		Middlewares: h.middleware,
	}
}

func (h *Handler) definitionsOp() huma.Operation {
	return huma.Operation{
		OperationID: "resources-list",
		Method:      http.MethodGet,
		Path:        "/api/resources",
		Summary:     "List served resource definitions",
		Description: "Returns the resources this server exposes, with their required and searchable fields.",
		Tags:        []string{"resources"},
		Middlewares: h.middleware,
	}
}
