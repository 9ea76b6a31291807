// Package api provides the HTTP API for the application
package api

import (
	"strings"

	"github.com/google/uuid"

	"echobox/internal/platform/config"
	"echobox/internal/platform/logger"
	phttp "echobox/internal/platform/net/http"
	"echobox/internal/platform/store"

	"echobox/internal/modkit"
	"echobox/internal/modkit/httpkit"
	"echobox/internal/modkit/module"
	"echobox/internal/modkit/swaggerkit"

	capsmod "echobox/internal/services/api/capsules/module"
	eventsmod "echobox/internal/services/api/events/module"
	metamod "echobox/internal/services/api/meta/module"
	songsmod "echobox/internal/services/api/songs/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// bearer tokens are opaque per-user ids until a real identity service lands
	authPort := httpkit.NewPortFunc(userToken)
	authed := httpkit.Auth(authPort)

	// construct songs and events first so capsules can consume their ports
	songs := songsmod.New(deps, modkit.WithMiddlewares(authed))
	resolver := module.MustPortsOf[songsmod.Ports](songs).Resolver

	events := eventsmod.New(deps, modkit.WithMiddlewares(authed))
	recorder := module.MustPortsOf[eventsmod.Ports](events).Recorder

	capsules := capsmod.New(
		deps,
		modkit.WithMiddlewares(authed),
		modkit.WithPorts(capsmod.Ports{
			Resolver: resolver,
			Recorder: recorder,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		songs,
		events,
		capsules,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

// userToken validates an opaque bearer token and returns the user id it names
func userToken(token string) (string, error) {
	t := strings.TrimSpace(token)
	id, err := uuid.Parse(t)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
