package module

import (
	capsdom "echobox/internal/services/api/capsules/domain"
)

// ExposedPorts holds the ports the capsules module offers to others
type ExposedPorts struct {
	Sweeper capsdom.SweepPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
