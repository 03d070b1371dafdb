// Package cli provides the interactive RootShare command-line client.
//
// NewApp wires configuration, the local credential store, the API clients
// and the services; App.Run starts a REPL that blocks until the user exits.
// The prompt follows the session: after a sign-out, including one caused by
// a failed token refresh, the client is back on the login screen.
package cli
