// Package registry resolves namespaces to the store instances they contain.
//
// A registry is read once per invocation from a file (see Load) and then passed
// by reference to the components that need it. It holds a default partition,
// used when no namespace is given, and any number of named partitions. Each
// partition is an ordered list of instances; the order of the file is the order
// in which instances are contacted and reported.
//
// Transport selection:
//
//   - With a namespace, Resolve always reports the unix socket transport, since
//     namespaced instances are only reachable through their local socket.
//   - Without a namespace the caller's preference is returned unchanged.
//
// Logical databases are names bound to one instance and a numeric DB index.
// They are looked up with LookupDatabase, which reports unknown names with an
// InvalidDatabaseError.
package registry
