package module

import (
	eventsdom "echobox/internal/services/api/events/domain"
)

// Ports holds the ports exposed by the events module
type Ports struct {
	Recorder eventsdom.RecorderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
