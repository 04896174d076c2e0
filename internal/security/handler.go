package security

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
)

type loginParams struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginResponse struct {
	SessionKey string       `json:"session_key"`
	User       userResponse `json:"user"`
}

type Handler struct {
	service *AuthService
}

func NewHandler(service *AuthService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterMethods(web *jsonrpc.Endpoint) {
	web.Register("login", h.Login, jsonrpc.Public(), jsonrpc.Params("username", "password"))
	web.Register("logout", h.Logout)
}

func (h *Handler) Login(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params loginParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	result, err := h.service.Login(ctx, jsonrpc.ClientIP(ctx), params.Username, params.Password)
	if err != nil {
		return nil, err
	}

	return loginResponse{
		SessionKey: result.Session.Key.String(),
		User: userResponse{
			ID:        result.User.ID,
			Username:  result.User.Username,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
		},
	}, nil
}

func (h *Handler) Logout(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	if err := h.service.Logout(ctx); err != nil {
		return nil, err
	}
	return true, nil
}
