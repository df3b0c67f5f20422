package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/api/view"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

type DashboardHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewDashboardHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, renderer *view.Renderer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, renderer, logger),
		uc:          uc,
	}
}

// Dashboard renders the task list.
func (h *DashboardHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data := view.DashboardData{
		Email: h.userEmail(ctx),
		Error: transport.QueryString(ctx, "error"),
	}

	tasks, err := h.uc.ListTasks(stdCtx, h.userID(ctx))
	if err != nil {
		h.logger.Error("task list failed", zap.Error(err))
		data.Error = "Não foi possível carregar as tarefas."
	}
	data.Tasks = tasks

	h.render(ctx, "dashboard", data)
}

// CreateTask handles the new-task form.
func (h *DashboardHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.CreateTask(stdCtx, h.userID(ctx), transport.FormString(ctx, "title"))
	h.finishMutation(ctx, "create task", err)
}

// RenameTask handles the task title form.
func (h *DashboardHandler) RenameTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.RenameTask(stdCtx, h.userID(ctx),
		transport.RouteParam(ctx, "id"),
		transport.FormString(ctx, "title"),
	)
	h.finishMutation(ctx, "rename task", err)
}

// DeleteTask removes a task and all its activities.
func (h *DashboardHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	err := h.uc.DeleteTask(stdCtx, h.userID(ctx), transport.RouteParam(ctx, "id"))
	h.finishMutation(ctx, "delete task", err)
}

// AddActivity appends an activity to a task.
func (h *DashboardHandler) AddActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.AddActivity(stdCtx, h.userID(ctx),
		transport.RouteParam(ctx, "id"),
		transport.FormString(ctx, "title"),
	)
	h.finishMutation(ctx, "add activity", err)
}

// CompleteActivity marks an activity done.
func (h *DashboardHandler) CompleteActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.CompleteActivity(stdCtx, h.userID(ctx),
		transport.RouteParam(ctx, "id"),
		transport.RouteParam(ctx, "activityID"),
	)
	h.finishMutation(ctx, "complete activity", err)
}

// RenameActivity handles the activity title form.
func (h *DashboardHandler) RenameActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.RenameActivity(stdCtx, h.userID(ctx),
		transport.RouteParam(ctx, "id"),
		transport.RouteParam(ctx, "activityID"),
		transport.FormString(ctx, "title"),
	)
	h.finishMutation(ctx, "rename activity", err)
}

// DeleteActivity removes an activity.
func (h *DashboardHandler) DeleteActivity(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.DeleteActivity(stdCtx, h.userID(ctx),
		transport.RouteParam(ctx, "id"),
		transport.RouteParam(ctx, "activityID"),
	)
	h.finishMutation(ctx, "delete activity", err)
}

// finishMutation redirects back to the dashboard. Validation and
// not-found problems show up inline; store failures are logged and the
// page simply re-renders from the stored state.
func (h *DashboardHandler) finishMutation(ctx *fasthttp.RequestCtx, op string, err error) {
	switch {
	case err == nil:
		ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		h.redirectFlash(ctx, "/dashboard", "error", err.Error())
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.redirectFlash(ctx, "/dashboard", "error", "Este item não existe mais.")
	default:
		h.logger.Error("task mutation failed", zap.String("operation", op), zap.Error(err))
		ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
	}
}
