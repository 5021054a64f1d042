// Package client implements the connection factory used by the dispatcher to
// talk to store instances. It wraps go-redis and implements the
// dispatch.IConnectionFactory and dispatch.IConnection interfaces.
//
// Every Connect creates a dedicated go-redis client with a single pooled
// connection. The client never retries a command and only applies read and
// write deadlines when a timeout is configured. Connections are dialed lazily
// through the tcp or unix connector of the transport package, so an unreachable
// instance is reported by the first Do call.
//
// Error Mapping:
//
//   - dial failures (refused, missing socket, unreachable host) become
//     *dispatch.ConnectionError
//   - error replies of the store become *dispatch.ResponseError
//   - an instance without an address for the chosen transport fails Connect with
//     *registry.ConfigurationError
//
// Usage Example:
//
//	factory := client.NewRedisConnectionFactory(common.ClientConfig{})
//	defer factory.Close()
//
//	conn, err := factory.Connect(ctx, instance, 0, false)
//	if err != nil {
//	  return err
//	}
//	defer conn.Close()
//
//	reply, err := conn.Do(ctx, "PING")
//
// The factory is safe for concurrent use. Close releases every connection whose
// owner did not close it.
package client
