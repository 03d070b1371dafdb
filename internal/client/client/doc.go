// Package client contains the transport layer of the RootShare client.
//
// # Overview
//
//  1. Client and ResourceClient describe the backend REST API: the auth
//     endpoints (register, login, google sign-in, refresh, logout, me) and
//     the plant/post resources.
//  2. HTTPClient implements both over net/http with JSON bodies, a request
//     ID header on every call, optional Prometheus instrumentation, and an
//     oauth2.Transport that injects the bearer token for resource calls.
//  3. InitDatabase and RunMigrations bootstrap the local SQLite database
//     with the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *StatusError, which matches ErrUnauthorized,
// ErrConflict and ErrBadRequest with errors.Is. Transport failures
// (refused connection, timeout, broken body) wrap ErrUnavailable.
// A 2xx response without a body yields ErrEmptyResponse.
package client
