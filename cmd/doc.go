// Package cmd implements the command-line interface of mrcli. There is a single
// root command:
//
//	mrcli [-s] [-n NAMESPACE] DBNAME CMD [ARGS...]
//	mrcli [-s] [-n NAMESPACE] {PING|SAVE|FLUSHALL}
//
// Two or more arguments send CMD verbatim to the instance hosting DBNAME. A
// single argument broadcasts the admin operation to every instance of the
// namespace. Flag parsing stops at the first argument.
//
// The package is organized into:
//
//   - root.go: the root command and the top-level error handling, which turns
//     every error into one line on stderr and exit code 1
//   - util: shared utilities for flags and configuration (internal use)
//
// Configuration is read from flags and MRCLI_* environment variables, .env and
// .env.local files are loaded first. See mrcli --help for all flags.
package cmd
