// Package unix implements the Unix domain socket connector of the transport
// package. The endpoint of an instance is the socket path from the registry;
// instances without a socket path cannot be reached through this connector.
package unix
