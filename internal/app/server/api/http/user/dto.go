package user

import "notekeeper/internal/domain/user"

type registerInput struct {
	Body user.Credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type loginInput struct {
	Body user.Credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type logoutInput struct {
	Authorization string `header:"Authorization"`
}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
