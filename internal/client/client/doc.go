// Package client contains the client-side transport of Petzy.
//
// # Overview
//
// The package provides:
//  1. The contracts the rest of the client depends on: DocumentStore (what
//     the preference engine needs), Catalog and the aggregate Client.
//  2. GRPCClient, a gRPC implementation that injects the access token via
//     interceptors, refreshes expired tokens transparently, keeps document
//     subscriptions alive across reconnects and maps status codes to
//     sentinel errors.
//  3. InitDatabase and RunMigrations, which open the local SQLite database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Unavailable and DeadlineExceeded map to ErrUnavailable, Unauthenticated
// and PermissionDenied to ErrUnauthorized, NotFound to common.ErrorNotFound.
package client
