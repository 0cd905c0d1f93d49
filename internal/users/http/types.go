package http

import "github.com/mvps-print/printshop-backend/internal/users/service"

type Handler struct {
	users *service.UserService
}

func New(users *service.UserService) *Handler {
	return &Handler{users: users}
}
