// Package module wires the sweeper worker service and exposes its ports
package module

import (
	"echobox/internal/modkit"
	"echobox/internal/modkit/httpkit"
	capsdom "echobox/internal/services/api/capsules/domain"
	"echobox/internal/services/sweeper/service"
)

// Module defines the sweeper worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the sweeper worker module around an injected sweep port
func New(deps modkit.Deps, caps capsdom.SweepPort, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Interval != 0 {
		opts.Interval = overrides.Interval
	}
	if overrides.Batch != 0 {
		opts.Batch = overrides.Batch
	}

	svc := service.New(caps, deps.Log, service.Config{
		Interval: opts.Interval,
		Batch:    opts.Batch,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Worker: svc}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "sweeper" }

// Prefix returns the module route prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
