package module

import dom "echobox/internal/services/sweeper/domain"

// Ports holds the ports exposed by the sweeper module
type Ports struct {
	Worker dom.WorkerPort
}
