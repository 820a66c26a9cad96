package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-register",
		Method:      http.MethodPost,
		Path:        "/user/register",
		Summary:     "Регистрация пользователя",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/user/login",
		Summary:     "Авторизация пользователя",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-logout",
		Method:      http.MethodPost,
		Path:        "/user/logout",
		Summary:     "Завершение сессии",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
