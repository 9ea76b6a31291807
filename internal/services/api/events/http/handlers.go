// Package http provides http transport for unlock events
package http

import (
	stdhttp "net/http"

	"echobox/internal/modkit/httpkit"
	"echobox/internal/services/api/events/domain"
	svc "echobox/internal/services/api/events/service"
)

// Register mounts events endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// @Summary Recent capsule unlock events
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Filters"
// @Success 200 {array} domain.RecentEvent "ok"
// @Router /events/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}
