// Package transport defines how the client reaches a store instance. A
// connector turns a registry.Instance into an endpoint for its network and
// dials single connections to it.
//
// Key Components:
//
//   - IClientConnector: Interface implemented by the tcp and unix subpackages.
//     The connection factory in rpc/client selects the connector per call
//     depending on the unix socket flag.
//
// Connectors do not retry and do not pool. Pooling and the wire protocol are
// left to the store client that uses the returned net.Conn.
package transport
