// Package dispatch executes store commands against the instances of a
// multi-instance deployment.
//
// Two modes are supported:
//
//   - ExecuteOne sends one arbitrary command to the instance hosting a logical
//     database and prints the reply in redis-cli's non-interactive format.
//   - ExecuteAll broadcasts PING, SAVE or FLUSHALL to every instance of a
//     namespace, one goroutine per instance, waits for all of them and prints
//     either the success token of the operation or one failure line per
//     unreachable instance, in resolver order.
//
// Instances are resolved through an IResolver (usually *registry.Registry) and
// reached through an IConnectionFactory (usually the go-redis based factory in
// rpc/client). Replies are modelled as a closed variant (Reply) so output
// formatting does not depend on the client library.
//
// Errors:
//
//	Only *ConnectionError is recovered, and only inside a broadcast worker.
//	Everything else (configuration errors, error replies, unknown operations)
//	is returned to the caller, which renders it with Describe.
package dispatch
