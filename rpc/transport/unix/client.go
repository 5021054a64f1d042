package unix

import (
	"context"
	"net"
	"time"

	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/ValentinKolb/mrcli/rpc/common"
	"github.com/ValentinKolb/mrcli/rpc/transport"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct {
	timeout time.Duration
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Endpoint(instance registry.Instance) (string, error) {
	if instance.UnixSocket == "" {
		return "", registry.NewConfigurationError(nil, "instance %s has no unix socket configured", instance.Hostname)
	}
	return instance.Address(true), nil
}

func (c *clientConnector) Connect(ctx context.Context, endpoint string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", endpoint)
	if err != nil {
		return nil, err
	}
	transport.Logger.Debugf("connected to %s via unix socket", endpoint)
	return conn, nil
}

// --------------------------------------------------------------------------
// Client Connector Factory Method
// --------------------------------------------------------------------------

// NewUnixClientConnector creates a connector for Unix sockets
func NewUnixClientConnector(config common.ClientConfig) transport.IClientConnector {
	return &clientConnector{timeout: config.Timeout()}
}
