// Package common holds the client configuration and the logger setup shared by
// the command line and the client packages.
package common
