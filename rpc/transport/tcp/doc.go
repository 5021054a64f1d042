// Package tcp implements the TCP connector of the transport package.
//
// The endpoint of an instance is "hostname:port". After dialing, the socket
// options of common.TCPConf are applied (TCP_NODELAY and an optional keepalive
// period). An instance without a port is reported as a configuration error.
package tcp
