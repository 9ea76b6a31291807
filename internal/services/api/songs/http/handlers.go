// Package http provides http transport for songs
package http

import (
	stdhttp "net/http"

	"echobox/internal/modkit/httpkit"
	"echobox/internal/services/api/songs/domain"
	svc "echobox/internal/services/api/songs/service"
)

// Register mounts songs endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/create", h.create)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
}

type handlers struct{ svc svc.Service }

// @Summary Register a song in the catalog
// @Tags Songs
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Song"
// @Success 200 {object} domain.Song "ok"
// @Router /songs/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// @Summary Fetch a song by id
// @Tags Songs
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Selector"
// @Success 200 {object} domain.Song "ok"
// @Router /songs/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}

// @Summary List catalog songs newest first
// @Tags Songs
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.Song "ok"
// @Router /songs/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}
