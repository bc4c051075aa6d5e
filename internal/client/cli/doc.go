// Package cli implements the interactive TaskKeeper command line: a small
// REPL over the session and task services.
package cli
