package note

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-list",
		Method:      http.MethodGet,
		Path:        "/api/notes",
		Summary:     "Список заметок пользователя",
		Description: "Возвращает все заметки пользователя, новые первыми.",
		Tags:        []string{"notes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-create",
		Method:        http.MethodPost,
		Path:          "/api/notes",
		Summary:       "Создать заметку",
		Tags:          []string{"notes"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-find",
		Method:      http.MethodGet,
		Path:        "/api/notes/{id}",
		Summary:     "Получить заметку",
		Tags:        []string{"notes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-update",
		Method:      http.MethodPut,
		Path:        "/api/notes/{id}",
		Summary:     "Обновить заметку",
		Tags:        []string{"notes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "notes-delete",
		Method:      http.MethodDelete,
		Path:        "/api/notes/{id}",
		Summary:     "Удалить заметку",
		Tags:        []string{"notes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
