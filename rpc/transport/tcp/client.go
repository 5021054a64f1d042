package tcp

import (
	"context"
	"net"
	"time"

	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/ValentinKolb/mrcli/rpc/common"
	"github.com/ValentinKolb/mrcli/rpc/transport"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct {
	timeout time.Duration
	conf    common.TCPConf
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Endpoint(instance registry.Instance) (string, error) {
	if instance.Port == 0 {
		return "", registry.NewConfigurationError(nil, "instance %s has no port configured", instance.Hostname)
	}
	return instance.Address(false), nil
}

func (c *clientConnector) Connect(ctx context.Context, endpoint string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		return nil, err
	}

	if err := c.upgradeConnection(conn); err != nil {
		conn.Close()
		return nil, err
	}

	transport.Logger.Debugf("connected to %s via tcp", endpoint)
	return conn, nil
}

// upgradeConnection applies the TCPConf socket options to the connection
func (c *clientConnector) upgradeConnection(conn net.Conn) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing to upgrade
	}

	if err := tcpConn.SetNoDelay(c.conf.TCPNoDelay); err != nil {
		return err
	}

	if c.conf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}

		keepAlivePeriod := time.Duration(c.conf.TCPKeepAliveSec) * time.Second
		if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Client Connector Factory Method
// --------------------------------------------------------------------------

// NewTCPClientConnector creates a connector for TCP sockets
func NewTCPClientConnector(config common.ClientConfig) transport.IClientConnector {
	return &clientConnector{
		timeout: config.Timeout(),
		conf:    config.TCPConf,
	}
}
