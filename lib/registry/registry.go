package registry

import (
	"net"
	"strconv"

	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("registry")

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Instance describes one store instance. Port and UnixSocket are both optional,
// the transport preference decides which one is used for a connection.
type Instance struct {
	Hostname   string
	Port       int    // 0 if unset
	UnixSocket string // empty if unset
}

// Endpoint returns the socket path or the port, depending on the transport
func (i Instance) Endpoint(useUnixSocket bool) string {
	if useUnixSocket {
		return i.UnixSocket
	}
	return strconv.Itoa(i.Port)
}

// Address returns the address to dial for the given transport
func (i Instance) Address(useUnixSocket bool) string {
	if useUnixSocket {
		return i.UnixSocket
	}
	return net.JoinHostPort(i.Hostname, strconv.Itoa(i.Port))
}

// String returns hostname:endpoint for the TCP transport
func (i Instance) String() string {
	return i.Hostname + ":" + i.Endpoint(false)
}

// Database is a logical database name bound to an instance and a store DB index
type Database struct {
	Name     string
	Instance Instance
	Index    int
}

// partition is the set of instances and databases of one namespace
type partition struct {
	instances []Instance
	databases map[string]Database
}

// Registry maps namespaces to their instances. A Registry is built once per
// invocation and never mutated afterwards, so it is safe for concurrent reads.
type Registry struct {
	local      partition
	namespaces map[string]partition
}

// --------------------------------------------------------------------------
// Resolver
// --------------------------------------------------------------------------

// Resolve returns the ordered instances of the namespace and whether the unix
// socket transport has to be used. A namespace always forces the unix socket
// transport, without a namespace the caller's preference is returned.
func (r *Registry) Resolve(namespace string, unixSocket bool) ([]Instance, bool, error) {
	p, err := r.partition(namespace)
	if err != nil {
		return nil, false, err
	}

	if len(p.instances) == 0 {
		return nil, false, NewConfigurationError(nil, "no instances configured for %s", describeNamespace(namespace))
	}

	if namespace != "" {
		unixSocket = true
	}

	instances := make([]Instance, len(p.instances))
	copy(instances, p.instances)

	Logger.Debugf("resolved %d instance(s) for %s (unix socket: %t)", len(instances), describeNamespace(namespace), unixSocket)
	return instances, unixSocket, nil
}

// LookupDatabase returns the logical database with the given name
func (r *Registry) LookupDatabase(namespace, name string) (Database, error) {
	p, err := r.partition(namespace)
	if err != nil {
		return Database{}, err
	}

	db, ok := p.databases[name]
	if !ok {
		return Database{}, &InvalidDatabaseError{Name: name, Namespace: namespace}
	}
	return db, nil
}

func (r *Registry) partition(namespace string) (partition, error) {
	if namespace == "" {
		return r.local, nil
	}
	p, ok := r.namespaces[namespace]
	if !ok {
		return partition{}, NewConfigurationError(nil, "unknown namespace %q", namespace)
	}
	return p, nil
}

func describeNamespace(namespace string) string {
	if namespace == "" {
		return "the default namespace"
	}
	return "namespace " + strconv.Quote(namespace)
}
