package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/view"
	"github.com/taskdeck/backend/pkg/httpcontext"
	directoryUC "github.com/taskdeck/backend/usecase/directory"
)

type UsersHandler struct {
	baseHandler
	uc *directoryUC.UseCase
}

func NewUsersHandler(uc *directoryUC.UseCase, adapter *httpcontext.Adapter, renderer *view.Renderer, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		baseHandler: newBaseHandler(adapter, renderer, logger),
		uc:          uc,
	}
}

// Page renders the registered-user directory.
func (h *UsersHandler) Page(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data := view.DirectoryData{Email: h.userEmail(ctx)}

	entries, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.logger.Error("user directory fetch failed", zap.Error(err))
		data.Error = "Não foi possível listar os usuários."
	}
	for _, e := range entries {
		data.Users = append(data.Users, view.DirectoryRow{Name: e.Name, Email: e.Email})
	}

	h.render(ctx, "usuarios", data)
}

// List returns the directory as JSON.
func (h *UsersHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
