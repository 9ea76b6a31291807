// Package module wires capsules into the API using modkit
package module

import (
	"net/http"

	modkit "echobox/internal/modkit"
	"echobox/internal/modkit/httpkit"
	str "echobox/internal/platform/strings"
	capshttp "echobox/internal/services/api/capsules/http"
	capsrepo "echobox/internal/services/api/capsules/repo"
	capssvc "echobox/internal/services/api/capsules/service"
	eventsdom "echobox/internal/services/api/events/domain"
	songsdom "echobox/internal/services/api/songs/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc capssvc.Service
}

// Ports declares the required injected ports for this module
type Ports struct {
	Resolver songsdom.ResolverPort
	Recorder eventsdom.RecorderPort
}

// New constructs a capsules module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("capsules"),
		modkit.WithPrefix("/capsules"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Resolver == nil {
		panic("capsules module requires a song resolver port (from services/api/songs)")
	}

	repo := capsrepo.NewPG()
	svc := capssvc.New(deps.PG, repo, capssvc.Deps{
		Log:      deps.Log,
		Resolver: injected.Resolver,
		Recorder: injected.Recorder,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = ExposedPorts{Sweeper: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		capshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
