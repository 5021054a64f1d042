package dispatch

import (
	"context"

	"github.com/ValentinKolb/mrcli/lib/registry"
)

// --------------------------------------------------------------------------
// Interface Definitions for dependency injection
// --------------------------------------------------------------------------

// IResolver resolves namespaces and logical databases. It is implemented by
// *registry.Registry.
type IResolver interface {
	// Resolve returns the ordered instances of a namespace and whether the unix
	// socket transport must be used.
	Resolve(namespace string, unixSocket bool) (instances []registry.Instance, useUnixSocket bool, err error)
	// LookupDatabase returns the instance and DB index of a logical database.
	LookupDatabase(namespace, name string) (registry.Database, error)
}

// IConnectionFactory opens connections to store instances
type IConnectionFactory interface {
	// Connect returns a client for the instance bound to the given DB index.
	// Failures to reach the instance are reported as *ConnectionError, either
	// here or on the first call to Do.
	Connect(ctx context.Context, instance registry.Instance, db int, useUnixSocket bool) (IConnection, error)
}

// IConnection is a connection to a single store instance. It is owned by one
// goroutine for its whole lifetime.
type IConnection interface {
	// Do sends the command verbatim and returns the reply.
	// Error replies of the store are returned as *ResponseError.
	Do(ctx context.Context, args ...string) (Reply, error)
	// Close releases the connection
	Close() error
}
