package transport

import (
	"context"
	"net"

	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport")

// --------------------------------------------------------------------------
// Client Connector
// --------------------------------------------------------------------------

// IClientConnector defines the transport-specific connection operations
type IClientConnector interface {
	// GetName returns the network name of the transport ("tcp", "unix")
	GetName() string

	// Endpoint returns the address of the instance for this transport.
	// It fails with *registry.ConfigurationError if the instance is not
	// reachable through this transport.
	Endpoint(instance registry.Instance) (string, error)

	// Connect establishes a single connection to the endpoint
	Connect(ctx context.Context, endpoint string) (net.Conn, error)
}
