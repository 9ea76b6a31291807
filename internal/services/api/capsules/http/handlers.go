// Package http provides http transport for capsules
package http

import (
	stdhttp "net/http"

	"echobox/internal/modkit/httpkit"
	"echobox/internal/services/api/capsules/domain"
	svc "echobox/internal/services/api/capsules/service"
)

// Register mounts capsules endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/create", h.create)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.UpcomingInput](r, "/upcoming", h.upcoming)
	httpkit.PostJSON[domain.UnlockInput](r, "/unlock", h.unlock)
	httpkit.PostJSON[domain.UpdateInput](r, "/update", h.update)
	httpkit.PostJSON[domain.DeleteInput](r, "/delete", h.del)
}

type handlers struct{ svc svc.Service }

// @Summary Seal a new capsule
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Capsule"
// @Success 200 {object} domain.Capsule "ok"
// @Router /capsules/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// @Summary Fetch a capsule, unlocking it lazily when due
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Selector"
// @Success 200 {object} domain.Capsule "ok"
// @Router /capsules/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}

// @Summary List own capsules newest first
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.Capsule "ok"
// @Router /capsules/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Locked capsules due within the window, soonest first
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.UpcomingInput true "Window"
// @Success 200 {array} domain.Capsule "ok"
// @Router /capsules/upcoming [post]
func (h *handlers) upcoming(r *stdhttp.Request, in domain.UpcomingInput) (any, error) {
	return h.svc.Upcoming(r.Context(), in)
}

// @Summary Explicitly unlock a capsule
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.UnlockInput true "Selector"
// @Success 200 {object} domain.UnlockResult "ok"
// @Router /capsules/unlock [post]
func (h *handlers) unlock(r *stdhttp.Request, in domain.UnlockInput) (any, error) {
	return h.svc.Unlock(r.Context(), in)
}

// @Summary Edit a capsule that has not unlocked yet
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.UpdateInput true "Edits"
// @Success 200 {object} domain.Capsule "ok"
// @Router /capsules/update [post]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), in)
}

// @Summary Delete a capsule in any state
// @Tags Capsules
// @Accept json
// @Produce json
// @Param payload body domain.DeleteInput true "Selector"
// @Success 200 {object} map[string]bool "ok"
// @Router /capsules/delete [post]
func (h *handlers) del(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	if err := h.svc.Delete(r.Context(), in); err != nil {
		return nil, err
	}
	return map[string]bool{"deleted": true}, nil
}
