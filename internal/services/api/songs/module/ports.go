package module

import (
	songsdom "echobox/internal/services/api/songs/domain"
)

// Ports holds the ports exposed by the songs module
type Ports struct {
	Resolver songsdom.ResolverPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
