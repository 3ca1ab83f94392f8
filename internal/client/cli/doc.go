// Package cli provides the interactive Petzy command-line client.
//
// It wires configuration, local storage, the API client and the services,
// then runs an interactive REPL that supports online/offline operation.
// Typical flow: prompt for credentials, restore the last companion from the
// local shadow, start the preference subscription and a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Pet care actions: feed, play, groom, rest, interact
//   - Teleport between scenes and pick a companion from the catalog
//   - Stats, streak and daily history derived from the synced preferences
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
