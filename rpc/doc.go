// Package rpc groups the communication layer between mrcli and the store
// instances.
//
// The package is organized into several subpackages:
//
//   - common: Client configuration and the logger factory shared by all
//     packages.
//
//   - transport: Connectors that dial instances over TCP or Unix sockets.
//
//   - client: The go-redis backed connection factory used by the dispatcher.
package rpc
